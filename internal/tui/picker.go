package tui

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ccmon-tools/ccmon/internal/procscan"
	"github.com/ccmon-tools/ccmon/internal/store"
)

// pickerItem wraps a store.SavedSession for the picker list.
type pickerItem struct {
	session store.SavedSession
}

func (i pickerItem) Title() string {
	if i.session.Summary != "" {
		text := i.session.Summary
		if len(text) > 70 {
			text = text[:70] + "..."
		}
		return text
	}
	if len(i.session.ID) > 8 {
		return i.session.ID[:8]
	}
	return i.session.ID
}

func (i pickerItem) Description() string {
	home, _ := os.UserHomeDir()
	dir := procscan.ShortenPath(i.session.Directory, home, procscan.MaxPathDisplay)
	when := i.session.LastActivity.Local().Format("Jan 02, 3:04 PM")
	return dir + "  •  " + when
}

func (i pickerItem) FilterValue() string {
	return i.session.Summary + " " + i.session.ID + " " + i.session.Directory
}

// PickerResult holds the outcome of the session picker.
type PickerResult struct {
	Selected  *store.SavedSession
	Cancelled bool
}

// PickerModel is a standalone saved-session picker.
type PickerModel struct {
	list     list.Model
	result   PickerResult
	quitting bool
	ready    bool
}

type pickerKeyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

func defaultPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resume"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// NewPickerModel creates a picker over sessions already sorted newest first.
func NewPickerModel(sessions []store.SavedSession) PickerModel {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = pickerItem{session: s}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 0, 0)
	l.Title = "Resume a Session"
	l.SetShowStatusBar(true)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return PickerModel{list: l}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keys := defaultPickerKeyMap()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.Quit):
			m.result.Cancelled = true
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if item := m.list.SelectedItem(); item != nil {
				if pi, ok := item.(pickerItem); ok {
					m.result.Selected = &pi.session
				}
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

var pickerStyle = lipgloss.NewStyle().Padding(1, 2)

func (m PickerModel) View() tea.View {
	if !m.ready {
		v := tea.NewView("Loading...")
		v.AltScreen = true
		return v
	}
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(pickerStyle.Render(m.list.View()))
	v.AltScreen = true
	return v
}

// Result returns the picker result after the program exits.
func (m PickerModel) Result() PickerResult {
	return m.result
}

// PickSession runs the picker and returns the selected session.
// A nil session with nil error means the user cancelled.
func PickSession(sessions []store.SavedSession) (*store.SavedSession, error) {
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no sessions available")
	}

	p := tea.NewProgram(NewPickerModel(sessions))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(PickerModel).Result()
	if result.Cancelled {
		return nil, nil
	}
	return result.Selected, nil
}
