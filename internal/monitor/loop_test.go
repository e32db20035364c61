package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ccmon-tools/ccmon/internal/procscan"
	"github.com/ccmon-tools/ccmon/internal/store"
)

type fakeScanner struct {
	mu       sync.Mutex
	sessions []procscan.LiveSession
	err      error
	calls    int
}

func (f *fakeScanner) Scan(_ context.Context) ([]procscan.LiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.sessions, f.err
}

func (f *fakeScanner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeLister struct {
	sessions []store.SavedSession
	err      error
}

func (f *fakeLister) ListSessions(_ context.Context) ([]store.SavedSession, error) {
	return f.sessions, f.err
}

// collectSnapshots runs the loop until n snapshots arrive or a timeout hits.
func collectSnapshots(t *testing.T, l *Loop, snapshots <-chan Snapshot, cancel context.CancelFunc, n int) []Snapshot {
	t.Helper()
	var got []Snapshot
	timeout := time.After(5 * time.Second)
	for len(got) < n {
		select {
		case s := <-snapshots:
			got = append(got, s)
		case <-timeout:
			t.Fatalf("timed out after %d snapshots, want %d", len(got), n)
		}
	}
	cancel()
	return got
}

func newTestLoop(scanner LiveScanner, opts ...LoopOption) (*Loop, chan Snapshot) {
	snapshots := make(chan Snapshot, 64)
	sink := func(s Snapshot) { snapshots <- s }
	opts = append([]LoopOption{WithInterval(10 * time.Millisecond)}, opts...)
	return NewLoop(scanner, sink, opts...), snapshots
}

func TestLoop_DeliversSnapshots(t *testing.T) {
	scanner := &fakeScanner{sessions: []procscan.LiveSession{{PID: 42}}}
	lister := &fakeLister{sessions: []store.SavedSession{{ID: "abc"}}}
	l, snapshots := newTestLoop(scanner, WithSessionLister(lister))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	got := collectSnapshots(t, l, snapshots, cancel, 2)

	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, s := range got {
		if s.Err != nil {
			t.Errorf("snapshot %d Err = %v", i, s.Err)
		}
		if len(s.Live) != 1 || s.Live[0].PID != 42 {
			t.Errorf("snapshot %d Live = %+v", i, s.Live)
		}
		if len(s.Saved) != 1 || s.Saved[0].ID != "abc" {
			t.Errorf("snapshot %d Saved = %+v", i, s.Saved)
		}
		if s.UpdatedAt.IsZero() {
			t.Errorf("snapshot %d UpdatedAt is zero", i)
		}
	}
}

func TestLoop_TransientFailureContinues(t *testing.T) {
	scanner := &fakeScanner{err: errors.New("ps flaked")}
	l, snapshots := newTestLoop(scanner, WithMaxFailures(0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	got := collectSnapshots(t, l, snapshots, cancel, 3)

	if err := <-done; err != nil {
		t.Fatalf("Run with maxFailures=0 should never give up: %v", err)
	}
	for i, s := range got {
		if s.Err == nil {
			t.Errorf("snapshot %d Err = nil, want scan error", i)
		}
	}
}

func TestLoop_ConsecutiveFailuresFatal(t *testing.T) {
	scanner := &fakeScanner{err: errors.New("no process table")}
	l, _ := newTestLoop(scanner, WithMaxFailures(3))
	// Snapshots are buffered in newTestLoop's channel; no reader needed.

	err := l.Run(context.Background())
	if err == nil {
		t.Fatal("expected fatal error after consecutive failures")
	}
	if got := scanner.callCount(); got != 3 {
		t.Errorf("scan calls = %d, want 3", got)
	}
}

func TestLoop_FailureCountResets(t *testing.T) {
	scanner := &fakeScanner{err: errors.New("flaky")}
	l, snapshots := newTestLoop(scanner, WithMaxFailures(3))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	// Two failures, then recovery.
	timeout := time.After(5 * time.Second)
	for i := 0; i < 2; i++ {
		select {
		case <-snapshots:
		case <-timeout:
			t.Fatal("timed out waiting for failure snapshots")
		}
	}
	scanner.mu.Lock()
	scanner.err = nil
	scanner.mu.Unlock()

	collectSnapshots(t, l, snapshots, cancel, 4)
	if err := <-done; err != nil {
		t.Fatalf("Run should survive after recovery: %v", err)
	}
}

func TestLoop_CancelInterruptsSleep(t *testing.T) {
	scanner := &fakeScanner{}
	snapshots := make(chan Snapshot, 4)
	l := NewLoop(scanner, func(s Snapshot) { snapshots <- s }, WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case <-snapshots:
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot delivered")
	}

	start := time.Now()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancellation waited out the sleep")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancellation took %v, want prompt exit", elapsed)
	}
}

func TestLoop_WakeCutsSleepShort(t *testing.T) {
	scanner := &fakeScanner{}
	snapshots := make(chan Snapshot, 4)
	l := NewLoop(scanner, func(s Snapshot) { snapshots <- s }, WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	select {
	case <-snapshots:
	case <-time.After(5 * time.Second):
		t.Fatal("no first snapshot")
	}

	l.Wake()
	select {
	case <-snapshots:
	case <-time.After(time.Second):
		t.Fatal("Wake did not trigger an early cycle")
	}
}
