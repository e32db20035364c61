// Package cmd provides the CLI commands for ccmon.
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccmon-tools/ccmon/internal/config"
	"github.com/ccmon-tools/ccmon/internal/procscan"
	"github.com/ccmon-tools/ccmon/internal/store"
)

// global flags
var (
	claudeDir string
	interval  time.Duration
	logPath   string
	verbose   bool
)

// rootCmd is the root command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "ccmon",
	Short: "Monitor running and saved Claude Code sessions",
	Long: `ccmon watches Claude Code activity on this machine.

It shows live claude processes (working directory, terminal, uptime,
status) alongside the sessions saved under ~/.claude/projects, and can
hand a saved session back to the claude CLI to resume it.

Running without a subcommand launches the interactive monitor.

Examples:
  ccmon                    # Launch interactive monitor
  ccmon monitor --plain    # Text output, suitable for pipes
  ccmon list               # List saved sessions
  ccmon attach 2           # Resume the second most recent session
  ccmon attach 7f3a        # Resume by session id fragment`,
	RunE: runMonitor,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&claudeDir, "claude-dir", "", "session store root (default ~/.claude/projects)")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", 0, "refresh period (default from config, 3s)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write debug log to file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Monitor flags live on both since root runs the monitor directly.
	monitorCmd.Flags().BoolVar(&monitorPlain, "plain", false, "plain text output, no TUI")
	rootCmd.Flags().BoolVar(&monitorPlain, "plain", false, "plain text output, no TUI")

	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	listCmd.Flags().StringVarP(&listProject, "project", "p", "", "limit to one project directory")

	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(versionCmd)
}

// environment bundles the pieces every command needs.
type environment struct {
	cfg     config.Config
	home    string
	scanner *procscan.Scanner
	store   *store.Store
}

// loadEnvironment loads the config and applies flag overrides.
func loadEnvironment() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	root := cfg.ClaudeDir
	if claudeDir != "" {
		root = claudeDir
	}

	return &environment{
		cfg:     cfg,
		home:    home,
		scanner: procscan.NewScanner(home, procscan.WithExecName(cfg.ExecName)),
		store:   store.NewStore(root),
	}, nil
}

// refreshInterval resolves the poll period: flag beats config.
func (e *environment) refreshInterval() time.Duration {
	if interval > 0 {
		return interval
	}
	return e.cfg.RefreshDuration()
}

// logFile resolves the debug log path: flag beats config.
func (e *environment) logFile() string {
	if logPath != "" {
		return logPath
	}
	return e.cfg.LogFile
}
