//go:build windows

package procscan

import (
	"context"
	"errors"
	"os"
)

// Process-table scanning relies on ps and procfs; the monitor view is
// unix-only. Saved-session listing and attach still work on Windows.
func runPS(ctx context.Context) ([]byte, error) {
	return nil, errors.New("process scanning is not supported on windows")
}

func processCwd(ctx context.Context, pid int) string {
	return ""
}

// IsProcessAlive checks whether a process with the given PID exists.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	_, err := os.FindProcess(pid)
	return err == nil
}
