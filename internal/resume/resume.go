// Package resume hands a resolved saved session back to the Claude Code CLI.
package resume

import (
	"fmt"
	"os/exec"

	"github.com/ccmon-tools/ccmon/internal/store"
)

// Info describes how to exec into the CLI to resume a session.
type Info struct {
	Command string   // absolute path to the binary
	Args    []string // argv, including argv[0]
	Dir     string   // working directory to run in (empty = current)
}

// Command builds the resume invocation for a saved session. execName is the
// CLI binary to look up on PATH (normally "claude").
func Command(execName string, session store.SavedSession) (*Info, error) {
	bin, err := exec.LookPath(execName)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", execName, err)
	}
	return &Info{
		Command: bin,
		Args:    []string{execName, "--resume", session.ID},
		Dir:     session.Directory,
	}, nil
}
