package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"todo/internal/controller"
)

// terminal is the controller boundary for one-shot commands. Confirmation
// reads a y/N answer from in unless assumeYes is set.
type terminal struct {
	out, errOut io.Writer
	in          *bufio.Reader
	assumeYes   bool
	snap        controller.Snapshot
	failed      bool
}

func newTerminal(out, errOut io.Writer, in io.Reader, assumeYes bool) *terminal {
	return &terminal{out: out, errOut: errOut, in: bufio.NewReader(in), assumeYes: assumeYes}
}

func (t *terminal) Render(s controller.Snapshot) {
	t.snap = s
}

func (t *terminal) Notify(n controller.Notice) {
	if n.Level == controller.LevelInfo {
		fmt.Fprintln(t.out, n.Text)
		return
	}
	if n.Level == controller.LevelWarn {
		t.failed = true
	}
	fmt.Fprintf(t.errOut, "%s: %s\n", n.Level, n.Text)
}

func (t *terminal) Confirm(title, message string, onConfirm func()) {
	if t.assumeYes {
		onConfirm()
		return
	}
	fmt.Fprintf(t.out, "%s: %s [y/N] ", title, message)
	answer, _ := t.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		onConfirm()
	default:
		fmt.Fprintln(t.out, "Cancelled")
	}
}
