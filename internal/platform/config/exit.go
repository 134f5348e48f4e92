package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Exitf reports a fatal error on stderr, prefixed with the program name, and
// terminates the process with exit code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", filepath.Base(os.Args[0]), fmt.Sprintf(format, args...))
	os.Exit(1)
}
