// Package procscan discovers running Claude Code CLI sessions by
// inspecting the OS process table.
package procscan

import "time"

// Status is the heuristic activity classification of a live session.
type Status string

const (
	StatusRunning Status = "running"
	StatusIdle    Status = "idle"
	StatusIOWait  Status = "iowait"
	StatusStopped Status = "stopped"
	StatusZombie  Status = "zombie"
)

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusIdle:
		return "Idle"
	case StatusIOWait:
		return "I/O Wait"
	case StatusStopped:
		return "Stopped"
	case StatusZombie:
		return "Zombie"
	default:
		return "Idle"
	}
}

// LiveSession is one running CLI session observed during a scan.
// Values are constructed fresh on every scan and never mutated;
// a pid seen in two consecutive scans is a new value, not an update.
type LiveSession struct {
	PID        int       `json:"pid"`
	WorkingDir string    `json:"working_dir"` // resolved cwd, may be empty if unreadable
	Terminal   string    `json:"terminal"`    // controlling tty, empty if none
	StartTime  time.Time `json:"start_time"`
	Status     Status    `json:"status"`
}

// Uptime returns the elapsed time since the session's process started.
func (s LiveSession) Uptime(now time.Time) time.Duration {
	d := now.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// Facts are the raw per-process observations handed to an ActivityClassifier.
type Facts struct {
	PID   int
	State string // ps state field, e.g. "S", "R+", "Ss"
}

// ActivityClassifier maps raw process facts to a Status. The heuristic is
// approximate and tunable; implementations must return StatusIdle when no
// signal is available, never an error.
type ActivityClassifier interface {
	Classify(Facts) Status
}

// StateClassifier classifies from the ps/procfs state character.
type StateClassifier struct{}

func (StateClassifier) Classify(f Facts) Status {
	if f.State == "" {
		return StatusIdle
	}
	switch f.State[0] {
	case 'R':
		return StatusRunning
	case 'S', 'I':
		return StatusIdle
	case 'D':
		return StatusIOWait
	case 'T', 't':
		return StatusStopped
	case 'Z':
		return StatusZombie
	default:
		return StatusIdle
	}
}
