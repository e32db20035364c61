package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ccmon-tools/ccmon/internal/procscan"
	"github.com/ccmon-tools/ccmon/internal/store"
)

var (
	listJSON    bool
	listProject string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Long: `List sessions saved under the Claude Code store, newest first.

The leading ordinal can be passed to 'ccmon attach' to resume that
session.

Examples:
  ccmon list                 # All saved sessions
  ccmon list -p ~/myproject  # Sessions for one project
  ccmon list --json          # Machine-readable output`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var sessions []store.SavedSession
	if listProject != "" {
		sessions, err = env.store.ListProjectSessions(ctx, listProject)
	} else {
		sessions, err = env.store.ListSessions(ctx)
	}
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("No saved sessions found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tLAST ACTIVITY\tDIRECTORY\tSUMMARY")
	for i, s := range sessions {
		id := s.ID
		if len(id) > 8 && !verbose {
			id = id[:8]
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			id,
			s.LastActivity.Local().Format("2006-01-02 15:04"),
			procscan.ShortenPath(s.Directory, env.home, procscan.MaxPathDisplay),
			s.Summary,
		)
	}
	return tw.Flush()
}
