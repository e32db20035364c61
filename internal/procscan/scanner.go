package procscan

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultExecName is the base executable name of the Claude Code CLI.
// Matching is exact on the basename; substring matches are rejected so
// unrelated tools containing "claude" never appear.
const DefaultExecName = "claude"

// DefaultDetailTimeout bounds each per-process detail read (cwd lookup).
// A hang on one process must not stall the whole scan.
const DefaultDetailTimeout = 2 * time.Second

// Scanner enumerates running CLI agent sessions.
type Scanner struct {
	execName   string
	homeDir    string // threaded in for display abbreviation, not read ambiently
	classifier ActivityClassifier
	timeout    time.Duration

	// overridable for tests
	listProcs func(ctx context.Context) ([]byte, error)
	cwdOf     func(ctx context.Context, pid int) string
	now       func() time.Time
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExecName overrides the executable name to match.
func WithExecName(name string) Option {
	return func(s *Scanner) { s.execName = name }
}

// WithClassifier overrides the activity classifier.
func WithClassifier(c ActivityClassifier) Option {
	return func(s *Scanner) { s.classifier = c }
}

// WithDetailTimeout overrides the per-process detail timeout.
func WithDetailTimeout(d time.Duration) Option {
	return func(s *Scanner) { s.timeout = d }
}

// NewScanner creates a scanner. homeDir is used by HomePath display
// abbreviation and may be empty.
func NewScanner(homeDir string, opts ...Option) *Scanner {
	s := &Scanner{
		execName:   DefaultExecName,
		homeDir:    homeDir,
		classifier: StateClassifier{},
		timeout:    DefaultDetailTimeout,
		listProcs:  runPS,
		cwdOf:      processCwd,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HomeDir returns the home directory the scanner abbreviates against.
func (s *Scanner) HomeDir() string { return s.homeDir }

// Scan returns all live sessions whose executable basename equals the
// configured name. Individual processes that cannot be inspected (exited
// mid-scan, permission denied) are skipped, not reported. The only error
// returned is failure of the process listing itself.
func (s *Scanner) Scan(ctx context.Context) ([]LiveSession, error) {
	out, err := s.listProcs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	now := s.now()
	var sessions []LiveSession

	for _, line := range bytes.Split(out, []byte("\n")) {
		fields := strings.Fields(string(line))
		// pid tty etime state comm
		if len(fields) < 5 {
			continue
		}

		pid, err := strconv.Atoi(fields[0])
		if err != nil || pid <= 0 {
			continue
		}
		// comm may be a full path; match the basename exactly
		if filepath.Base(fields[4]) != s.execName {
			continue
		}

		elapsed, err := parseEtime(fields[2])
		if err != nil {
			continue
		}

		tty := fields[1]
		if tty == "?" || tty == "??" || tty == "-" {
			tty = ""
		}

		detailCtx, cancel := context.WithTimeout(ctx, s.timeout)
		cwd := s.cwdOf(detailCtx, pid)
		cancel()

		sessions = append(sessions, LiveSession{
			PID:        pid,
			WorkingDir: cwd,
			Terminal:   tty,
			StartTime:  now.Add(-elapsed),
			Status:     s.classifier.Classify(Facts{PID: pid, State: fields[3]}),
		})
	}

	return sessions, nil
}

// parseEtime parses the ps etime format: [[dd-]hh:]mm:ss.
func parseEtime(v string) (time.Duration, error) {
	var days int64
	if i := strings.IndexByte(v, '-'); i >= 0 {
		d, err := strconv.ParseInt(v[:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("etime days %q: %w", v, err)
		}
		days = d
		v = v[i+1:]
	}

	parts := strings.Split(v, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("etime %q: unexpected format", v)
	}

	var total int64
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("etime %q: %w", v, err)
		}
		total = total*60 + n
	}

	return time.Duration(days)*24*time.Hour + time.Duration(total)*time.Second, nil
}
