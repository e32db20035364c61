//go:build !windows

package procscan

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// runPS lists all processes with the fields the scanner parses.
// etime and comm are available on both macOS and Linux ps.
func runPS(ctx context.Context) ([]byte, error) {
	return exec.CommandContext(ctx, "ps", "-eo", "pid=,tty=,etime=,state=,comm=").Output()
}

// processCwd returns the resolved working directory of a process, not the
// value at launch (processes may chdir). On Linux, reads /proc/PID/cwd.
// Falls back to lsof on macOS and other Unix. Returns "" when unreadable.
func processCwd(ctx context.Context, pid int) string {
	pidStr := strconv.Itoa(pid)

	if target, err := os.Readlink("/proc/" + pidStr + "/cwd"); err == nil {
		return target
	}

	out, err := exec.CommandContext(ctx, "lsof", "-a", "-p", pidStr, "-d", "cwd", "-Fn").Output()
	if err != nil {
		return ""
	}
	// lsof -Fn output: 'f' lines are FDs, 'n' lines are names.
	// The name we want follows the "fcwd" line.
	foundCwd := false
	for _, line := range bytes.Split(out, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if line[0] == 'f' && string(line[1:]) == "cwd" {
			foundCwd = true
			continue
		}
		if foundCwd && line[0] == 'n' {
			return string(line[1:])
		}
	}
	return ""
}

// IsProcessAlive checks whether a process with the given PID exists.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds. Send signal 0 to check.
	return process.Signal(syscall.Signal(0)) == nil
}
