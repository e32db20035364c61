// Package monitor drives the periodic refresh cycle: scan live processes
// and the session store, hand a snapshot to the presentation layer, sleep,
// repeat until cancelled.
package monitor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ccmon-tools/ccmon/internal/procscan"
	"github.com/ccmon-tools/ccmon/internal/store"
)

// DefaultInterval is the default refresh period.
const DefaultInterval = 3 * time.Second

// DefaultMaxFailures is how many consecutive cycle-level failures are
// tolerated before the loop gives up. A single bad cycle is transient;
// an unbroken run of them means the underlying facility is gone.
const DefaultMaxFailures = 5

// LiveScanner is the process-scanning dependency of the loop.
type LiveScanner interface {
	Scan(ctx context.Context) ([]procscan.LiveSession, error)
}

// SessionLister is the saved-session dependency of the loop.
type SessionLister interface {
	ListSessions(ctx context.Context) ([]store.SavedSession, error)
}

// Snapshot is the render-ready result of one refresh cycle. Record slices
// are constructed fresh each cycle and must be treated as immutable.
type Snapshot struct {
	Live      []procscan.LiveSession
	Saved     []store.SavedSession
	UpdatedAt time.Time
	Err       error // transient cycle-level failure, nil on success
}

// Loop polls the scanners and delivers snapshots to a sink.
type Loop struct {
	scanner     LiveScanner
	lister      SessionLister // optional; nil skips saved sessions
	sink        func(Snapshot)
	interval    time.Duration
	maxFailures int

	wake chan struct{} // external refresh trigger (store watcher)

	// injectable for tests
	now   func() time.Time
	after func(d time.Duration) <-chan time.Time
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInterval sets the refresh period.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithSessionLister adds saved-session polling to each cycle.
func WithSessionLister(s SessionLister) LoopOption {
	return func(l *Loop) { l.lister = s }
}

// WithMaxFailures sets the consecutive-failure cutoff. Zero disables it.
func WithMaxFailures(n int) LoopOption {
	return func(l *Loop) { l.maxFailures = n }
}

// NewLoop creates a refresh loop delivering snapshots to sink.
func NewLoop(scanner LiveScanner, sink func(Snapshot), opts ...LoopOption) *Loop {
	l := &Loop{
		scanner:     scanner,
		sink:        sink,
		interval:    DefaultInterval,
		maxFailures: DefaultMaxFailures,
		wake:        make(chan struct{}, 1),
		now:         time.Now,
		after:       time.After,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wake requests an immediate refresh, cutting the current sleep short.
// Safe to call from any goroutine; coalesces when a refresh is pending.
func (l *Loop) Wake() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes scan cycles until ctx is cancelled, which is not an error.
// It returns early only after maxFailures consecutive cycle-level failures.
// A cycle that overruns the interval starts the next one immediately.
func (l *Loop) Run(ctx context.Context) error {
	failures := 0

	for {
		start := l.now()
		snap := l.cycle(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.sink(snap)

		if snap.Err != nil {
			failures++
			if l.maxFailures > 0 && failures >= l.maxFailures {
				return fmt.Errorf("%d consecutive scan failures, giving up: %w", failures, snap.Err)
			}
		} else {
			failures = 0
		}

		remaining := l.interval - l.now().Sub(start)
		if remaining > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-l.wake:
			case <-l.after(remaining):
			}
		}
	}
}

// cycle runs the process scan and saved-session listing in parallel; they
// share no mutable state and join before the snapshot is built.
func (l *Loop) cycle(ctx context.Context) Snapshot {
	var (
		live  []procscan.LiveSession
		saved []store.SavedSession
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		live, err = l.scanner.Scan(gctx)
		return err
	})
	if l.lister != nil {
		g.Go(func() error {
			var err error
			saved, err = l.lister.ListSessions(gctx)
			return err
		})
	}
	err := g.Wait()

	return Snapshot{
		Live:      live,
		Saved:     saved,
		UpdatedAt: l.now(),
		Err:       err,
	}
}
