package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccmon-tools/ccmon/internal/monitor"
	"github.com/ccmon-tools/ccmon/internal/procscan"
	"github.com/ccmon-tools/ccmon/internal/tui"
	"github.com/ccmon-tools/ccmon/internal/tuilog"
)

var monitorPlain bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch Claude Code sessions continuously",
	Long: `Watch live claude processes and saved sessions, refreshing every
few seconds until interrupted.

With a terminal attached this runs the interactive TUI. With --plain,
or when stdout is not a terminal, it prints a text table per refresh
instead.`,
	RunE: runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	if path := env.logFile(); path != "" {
		if err := tuilog.Init(path); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer tuilog.Log.Close()
	}
	tuilog.Log.Info("starting monitor", "interval", env.refreshInterval(), "store", env.store.Root())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	snapshots := make(chan monitor.Snapshot, 1)
	loop := monitor.NewLoop(env.scanner,
		func(s monitor.Snapshot) {
			select {
			case snapshots <- s:
			case <-ctx.Done():
			}
		},
		monitor.WithInterval(env.refreshInterval()),
		monitor.WithSessionLister(env.store),
	)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
		cancel()
	}()
	go loop.WatchStore(ctx, env.store.Root())

	if monitorPlain || env.cfg.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		err = runPlainMonitor(ctx, env.home, snapshots)
	} else {
		err = tui.RunMonitor(ctx, snapshots, loop.Wake, env.home)
	}
	cancel()

	if lerr := <-loopErr; lerr != nil {
		return lerr
	}
	return err
}

// runPlainMonitor prints one table per refresh until interrupted.
func runPlainMonitor(ctx context.Context, home string, snapshots <-chan monitor.Snapshot) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			if snap.Err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", snap.Err)
			}
			printSnapshot(os.Stdout, home, snap)
		}
	}
}

func printSnapshot(w *os.File, home string, snap monitor.Snapshot) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tDIRECTORY\tTERMINAL\tUPTIME\tSTATUS")
	for _, s := range snap.Live {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			s.PID,
			procscan.ShortenPath(s.WorkingDir, home, procscan.MaxPathDisplay),
			procscan.FormatTerminal(s.Terminal),
			procscan.FormatUptime(s.Uptime(snap.UpdatedAt)),
			s.Status.Label(),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "(%d active)  Updated: %s\n\n",
		len(snap.Live), snap.UpdatedAt.Local().Format("15:04:05"))
}
