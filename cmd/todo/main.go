package main

import (
	"fmt"
	"os"

	"todo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
