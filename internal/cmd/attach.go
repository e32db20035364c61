package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccmon-tools/ccmon/internal/resume"
	"github.com/ccmon-tools/ccmon/internal/store"
	"github.com/ccmon-tools/ccmon/internal/tui"
)

var attachCmd = &cobra.Command{
	Use:   "attach [token]",
	Short: "Resume a saved session in the claude CLI",
	Long: `Resume a saved session. The token is either an ordinal from
'ccmon list' (1 = most recent) or a fragment of the session id.

Without a token, an interactive picker opens.

Examples:
  ccmon attach        # Pick a session interactively
  ccmon attach 1      # Resume the most recent session
  ccmon attach 7f3a   # Resume by id fragment`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAttach,
}

func runAttach(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	sessions, err := env.store.ListSessions(context.Background())
	if err != nil {
		return err
	}

	var selected *store.SavedSession
	if len(args) == 1 {
		selected, err = store.Resolve(args[0], sessions)
		if err != nil {
			var ambiguous *store.AmbiguousError
			switch {
			case errors.Is(err, store.ErrNotFound):
				return fmt.Errorf("no saved session matches %q", args[0])
			case errors.As(err, &ambiguous):
				return fmt.Errorf("%q matches several sessions:\n  %s\nbe more specific or use an ordinal from 'ccmon list'",
					args[0], strings.Join(ambiguous.Matches, "\n  "))
			default:
				return err
			}
		}
	} else {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no terminal attached; pass a session token (see 'ccmon list')")
		}
		selected, err = tui.PickSession(sessions)
		if err != nil {
			return err
		}
		if selected == nil {
			return nil // cancelled
		}
	}

	info, err := resume.Command(env.cfg.ExecName, *selected)
	if err != nil {
		return err
	}
	fmt.Printf("Resuming session %s in %s\n", selected.ID, selected.Directory)
	return resume.Exec(info)
}
