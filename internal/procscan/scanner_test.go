package procscan

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fakeScanner(psOutput string, cwds map[int]string) *Scanner {
	s := NewScanner("/home/test")
	s.listProcs = func(_ context.Context) ([]byte, error) {
		return []byte(psOutput), nil
	}
	s.cwdOf = func(_ context.Context, pid int) string {
		return cwds[pid]
	}
	return s
}

func TestScan_ExactNameMatch(t *testing.T) {
	// claude-helper and vibeclaude must not match; /usr/bin/claude must.
	psOut := `  101 pts/0    01:02:03 S  claude
  102 pts/1       05:00 R+ claude-helper
  103 ?           12:34 S  vibeclaude
  104 pts/2       00:10 S  /usr/bin/claude
  105 pts/3       00:05 S  node
`
	s := fakeScanner(psOut, map[int]string{
		101: "/home/test/projects/alpha",
		104: "/home/test/projects/beta",
	})

	sessions, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].PID != 101 || sessions[1].PID != 104 {
		t.Errorf("pids = %d, %d, want 101, 104", sessions[0].PID, sessions[1].PID)
	}
	if sessions[0].WorkingDir != "/home/test/projects/alpha" {
		t.Errorf("WorkingDir = %q", sessions[0].WorkingDir)
	}
	if sessions[0].Terminal != "pts/0" {
		t.Errorf("Terminal = %q, want %q", sessions[0].Terminal, "pts/0")
	}
}

func TestScan_NoMatches(t *testing.T) {
	s := fakeScanner("  1 ?  10:00 S init\n", nil)

	sessions, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected 0 sessions, got %d", len(sessions))
	}
}

func TestScan_ListFailure(t *testing.T) {
	s := NewScanner("")
	s.listProcs = func(_ context.Context) ([]byte, error) {
		return nil, errors.New("ps unavailable")
	}

	if _, err := s.Scan(context.Background()); err == nil {
		t.Fatal("expected error when process listing fails")
	}
}

func TestScan_MalformedLinesSkipped(t *testing.T) {
	psOut := `garbage
  abc pts/0  01:00 S claude
  201 pts/0  bad-etime S claude
  202 pts/0  01:00 S claude
`
	s := fakeScanner(psOut, nil)

	sessions, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].PID != 202 {
		t.Errorf("PID = %d, want 202", sessions[0].PID)
	}
}

func TestScan_UptimeNonNegative(t *testing.T) {
	s := fakeScanner("  301 pts/0  02:30 S claude\n", nil)
	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	sessions, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	got := sessions[0].Uptime(base)
	want := 2*time.Minute + 30*time.Second
	if got != want {
		t.Errorf("Uptime = %v, want %v", got, want)
	}
	// A later observation of the same still-running pid never shrinks uptime.
	if later := sessions[0].Uptime(base.Add(3 * time.Second)); later < got {
		t.Errorf("uptime decreased across observations: %v < %v", later, got)
	}
}

func TestScan_NoTerminal(t *testing.T) {
	s := fakeScanner("  401 ?  00:10 S claude\n", nil)

	sessions, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if sessions[0].Terminal != "" {
		t.Errorf("Terminal = %q, want empty", sessions[0].Terminal)
	}
}

func TestParseEtime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"00:05", 5 * time.Second},
		{"12:34", 12*time.Minute + 34*time.Second},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"2-03:04:05", 51*time.Hour + 4*time.Minute + 5*time.Second},
	}
	for _, tt := range tests {
		got, err := parseEtime(tt.in)
		if err != nil {
			t.Errorf("parseEtime(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseEtime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseEtime_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1:2:3:4", "x-01:00"} {
		if _, err := parseEtime(in); err == nil {
			t.Errorf("parseEtime(%q): expected error", in)
		}
	}
}
