package storage

import (
	"errors"
	"fmt"
)

// Error reports a failed read or write against the underlying KV.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}
