package tui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Interactive reports whether stdout is attached to a terminal. Commands
// use it to decide between interactive prompts and plain output.
func Interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
