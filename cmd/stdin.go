package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
)

// stdinHasData reports whether stdin is a pipe or redirected file rather
// than a terminal or null device.
func stdinHasData() bool {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return false
	}
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeNamedPipe != 0 || info.Mode().IsRegular()
}
