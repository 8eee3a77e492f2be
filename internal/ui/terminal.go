package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTerminalStream reports whether v is a file attached to a terminal.
// Readers and writers that are not files, such as buffers, are never
// terminals.
func IsTerminalStream(v any) bool {
	f, ok := v.(*os.File)
	return ok && IsTerminal(f)
}
