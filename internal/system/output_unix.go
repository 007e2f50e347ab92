//go:build unix

package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RedirectOutput points the stdout and stderr descriptors at the log file
// path, so runtime panics land there even while the console shows graphics.
// An empty path leaves both untouched.
func RedirectOutput(path string) error {
	if path == "" {
		return nil
	}
	f, err := openOutputLog(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var errs []error
	for _, std := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup2(int(f.Fd()), int(std.Fd())); err != nil {
			errs = append(errs, fmt.Errorf("dup2 onto %s: %w", std.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func openOutputLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output log: %w", err)
	}
	return f, nil
}
