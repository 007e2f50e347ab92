//go:build !unix

package system

import (
	"fmt"
	"os"
)

// RedirectOutput swaps os.Stdout and os.Stderr for the log file at path.
// Output written by the runtime itself is not captured.
func RedirectOutput(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output log: %w", err)
	}
	os.Stdout, os.Stderr = f, f
	return nil
}
