// Package tui implements the interactive monitor and session picker.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/ccmon-tools/ccmon/internal/monitor"
	"github.com/ccmon-tools/ccmon/internal/procscan"
	"github.com/ccmon-tools/ccmon/internal/tuilog"
)

type pane int

const (
	paneLive pane = iota
	paneSaved
)

// snapshotMsg carries a fresh snapshot from the refresh loop.
type snapshotMsg monitor.Snapshot

// MonitorModel renders live processes and saved sessions side by side.
type MonitorModel struct {
	snapshots <-chan monitor.Snapshot
	wake      func()
	homeDir   string

	snapshot monitor.Snapshot
	haveData bool

	focus       pane
	savedOffset int

	width    int
	height   int
	ready    bool
	quitting bool

	keys   monitorKeyMap
	styles Styles
}

// NewMonitorModel creates the monitor view. snapshots is fed by the refresh
// loop; wake requests an immediate rescan (may be nil).
func NewMonitorModel(snapshots <-chan monitor.Snapshot, wake func(), homeDir string) MonitorModel {
	return MonitorModel{
		snapshots: snapshots,
		wake:      wake,
		homeDir:   homeDir,
		keys:      defaultMonitorKeyMap(),
		styles:    defaultStyles(),
	}
}

func (m MonitorModel) Init() tea.Cmd {
	return m.waitForSnapshot()
}

func (m MonitorModel) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.snapshots
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg(s)
	}
}

func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case snapshotMsg:
		m.snapshot = monitor.Snapshot(msg)
		m.haveData = true
		m.clampSavedOffset()
		if m.snapshot.Err != nil {
			tuilog.Log.Warn("refresh failed", "error", m.snapshot.Err)
		}
		return m, m.waitForSnapshot()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.toggleFocus()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.requestRefresh()
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.scrollSaved(-1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.scrollSaved(1)
			return m, nil
		}
	}

	return m, nil
}

func (m *MonitorModel) toggleFocus() {
	if m.focus == paneLive {
		m.focus = paneSaved
	} else {
		m.focus = paneLive
	}
}

func (m *MonitorModel) requestRefresh() {
	if m.wake != nil {
		m.wake()
	}
}

// scrollSaved moves the saved-session window; only active on that pane.
func (m *MonitorModel) scrollSaved(delta int) {
	if m.focus != paneSaved {
		return
	}
	m.savedOffset += delta
	m.clampSavedOffset()
}

func (m *MonitorModel) clampSavedOffset() {
	max := len(m.snapshot.Saved) - 1
	if max < 0 {
		max = 0
	}
	if m.savedOffset > max {
		m.savedOffset = max
	}
	if m.savedOffset < 0 {
		m.savedOffset = 0
	}
}

func (m MonitorModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	if !m.ready || !m.haveData {
		v := tea.NewView("Scanning for Claude Code sessions...")
		v.AltScreen = true
		return v
	}

	v := tea.NewView(m.viewContent())
	v.AltScreen = true
	return v
}

func (m MonitorModel) viewContent() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Claude Code Sessions"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Panel.Render(m.renderLiveTable()))
	b.WriteString("\n")
	b.WriteString(m.styles.Panel.Render(m.renderSavedList()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m MonitorModel) renderLiveTable() string {
	header := fmt.Sprintf("%-8s %-50s %-12s %-8s %s",
		"PID", "Directory", "Terminal", "Uptime", "Status")

	var rows []string
	rows = append(rows, m.styles.Header.Render(header))

	if len(m.snapshot.Live) == 0 {
		rows = append(rows, m.styles.Muted.Render("No active sessions"))
		return strings.Join(rows, "\n")
	}

	for _, s := range m.snapshot.Live {
		dir := procscan.ShortenPath(s.WorkingDir, m.homeDir, procscan.MaxPathDisplay)
		uptime := procscan.FormatUptime(s.Uptime(m.snapshot.UpdatedAt))
		row := fmt.Sprintf("%-8d %-50s %-12s %-8s ",
			s.PID, dir, procscan.FormatTerminal(s.Terminal), uptime)
		status := m.styles.statusStyle(s.Status).Render(s.Status.Label())
		rows = append(rows, m.styles.Row.Render(row)+status)
	}
	return strings.Join(rows, "\n")
}

// savedVisible bounds how many saved sessions fit below the live table.
func (m MonitorModel) savedVisible() int {
	used := len(m.snapshot.Live) + 10 // title, borders, headers, status bar
	visible := m.height - used
	if visible < 3 {
		visible = 3
	}
	if visible > 10 {
		visible = 10
	}
	return visible
}

func (m MonitorModel) renderSavedList() string {
	title := "Saved Sessions"
	if m.focus == paneSaved {
		title = "Saved Sessions (scrolling)"
	}
	rows := []string{m.styles.Header.Render(title)}

	saved := m.snapshot.Saved
	if len(saved) == 0 {
		rows = append(rows, m.styles.Muted.Render("No saved sessions"))
		return strings.Join(rows, "\n")
	}

	visible := m.savedVisible()
	end := m.savedOffset + visible
	if end > len(saved) {
		end = len(saved)
	}
	for i := m.savedOffset; i < end; i++ {
		s := saved[i]
		id := s.ID
		if len(id) > 8 {
			id = id[:8]
		}
		summary := s.Summary
		if summary == "" {
			summary = m.styles.Muted.Render("(no prompt)")
		}
		line := fmt.Sprintf("%3d. %-8s %-16s %s",
			i+1, id, s.LastActivity.Local().Format("Jan 02 15:04"), summary)
		rows = append(rows, line)
	}
	if end < len(saved) {
		rows = append(rows, m.styles.Muted.Render(fmt.Sprintf("... %d more", len(saved)-end)))
	}
	return strings.Join(rows, "\n")
}

func (m MonitorModel) renderStatusBar() string {
	active := fmt.Sprintf("(%d active)", len(m.snapshot.Live))
	updated := fmt.Sprintf("Updated: %s", m.snapshot.UpdatedAt.Local().Format("15:04:05"))
	help := "q quit · tab pane · r refresh"

	parts := []string{active, updated, help}
	if m.snapshot.Err != nil {
		parts = append(parts, m.styles.Error.Render("scan error: "+m.snapshot.Err.Error()))
	}
	return m.styles.StatusBar.Render(strings.Join(parts, "   "))
}

// RunMonitor runs the monitor UI until the user quits or ctx is cancelled.
func RunMonitor(ctx context.Context, snapshots <-chan monitor.Snapshot, wake func(), homeDir string) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	// Probe the initial terminal size; stdout, then stdin, then stderr.
	for _, fd := range []int{int(os.Stdout.Fd()), int(os.Stdin.Fd()), int(os.Stderr.Fd())} {
		if term.IsTerminal(fd) {
			w, h, err := term.GetSize(fd)
			if err == nil && w > 0 && h > 0 {
				tuilog.Log.Info("terminal size", "fd", fd, "width", w, "height", h)
				opts = append(opts, tea.WithWindowSize(w, h))
				break
			}
		}
	}

	model := NewMonitorModel(snapshots, wake, homeDir)
	p := tea.NewProgram(model, opts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
