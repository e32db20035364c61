//go:build windows

package resume

import (
	"os"
	"os/exec"
)

// Exec runs the resume command as a child process and exits with its
// status. Windows has no execve equivalent.
func Exec(info *Info) error {
	cmd := exec.Command(info.Command, info.Args[1:]...)
	cmd.Dir = info.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	return nil
}
