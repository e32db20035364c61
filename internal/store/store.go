// Package store reads saved Claude Code session records from the on-disk
// session store (~/.claude/projects). It is a read-only observer: malformed
// or partially written records are skipped, and a missing store root is an
// empty result, not an error.
package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SummaryMaxLen bounds the display length of a session summary.
const SummaryMaxLen = 80

// SavedSession is one persisted session record.
type SavedSession struct {
	ID           string    `json:"id"`            // filename stem, assigned by the CLI
	Directory    string    `json:"directory"`     // project path the session ran in
	Path         string    `json:"path"`          // full path to the record file
	LastActivity time.Time `json:"last_activity"` // most recent recorded event
	Summary      string    `json:"summary"`       // first user prompt, truncated; may be empty
}

// Store reads saved sessions from a root directory containing one
// subdirectory per project.
type Store struct {
	root string
}

// NewStore creates a store reader. An empty root uses the default
// ~/.claude/projects location.
func NewStore(root string) *Store {
	if root == "" {
		if dir, err := DefaultRoot(); err == nil {
			root = dir
		}
	}
	return &Store{root: root}
}

// Root returns the store root path.
func (s *Store) Root() string { return s.root }

// DefaultRoot returns the default Claude Code projects directory.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "projects"), nil
}

// ListSessions returns all saved sessions across all project directories,
// sorted for display. The root not existing yields an empty slice: the
// store may legitimately not exist yet.
func (s *Store) ListSessions(ctx context.Context) ([]SavedSession, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []SavedSession
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		projectDir := filepath.Join(s.root, entry.Name())
		_, projectPath := DecodeDirName(entry.Name())
		sessions = append(sessions, listProjectSessions(projectDir, projectPath)...)
	}

	SortForDisplay(sessions)
	return sessions, nil
}

// ListProjectSessions returns saved sessions for a single project path
// (the decoded filesystem path, e.g. /home/x/proj), sorted for display.
func (s *Store) ListProjectSessions(ctx context.Context, projectPath string) ([]SavedSession, error) {
	dirName := EncodeDirName(projectPath)
	sessions := listProjectSessions(filepath.Join(s.root, dirName), projectPath)
	SortForDisplay(sessions)
	return sessions, ctx.Err()
}

// listProjectSessions reads one project directory. Unreadable or malformed
// record files are skipped individually.
func listProjectSessions(projectDir, projectPath string) []SavedSession {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil
	}

	var sessions []SavedSession
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(projectDir, entry.Name())
		head, ok := readRecordHead(path)
		if !ok {
			continue
		}

		directory := projectPath
		if head.cwd != "" {
			directory = head.cwd
		}

		sessions = append(sessions, SavedSession{
			ID:           strings.TrimSuffix(entry.Name(), ".jsonl"),
			Directory:    directory,
			Path:         path,
			LastActivity: info.ModTime(),
			Summary:      truncateSummary(head.firstPrompt, SummaryMaxLen),
		})
	}
	return sessions
}

// SortForDisplay orders sessions most recent first; equal timestamps break
// ties by id ascending so ordinal assignment stays deterministic.
func SortForDisplay(sessions []SavedSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].LastActivity.Equal(sessions[j].LastActivity) {
			return sessions[i].LastActivity.After(sessions[j].LastActivity)
		}
		return sessions[i].ID < sessions[j].ID
	})
}

func truncateSummary(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
