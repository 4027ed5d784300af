package blocklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/scheduler"
)

type AddBlockMsg struct{}

type ExtraBlockMsg struct{}

type ShiftBlockMsg struct {
	ID    string
	Delta int
}

type DeleteBlockMsg struct {
	ID string
}

type CompleteBlockMsg struct {
	ID string
}

type ToggleAlarmMsg struct {
	ID string
}

type Item struct {
	Window scheduler.Window
	Active bool
}

func (i Item) Title() string {
	marker := ""
	if i.Active {
		marker = "▶ "
	}
	switch i.Window.Block.Status {
	case models.StatusCompleted:
		marker += "✓ "
	case models.StatusCanceled:
		marker += "✗ "
	}
	return marker + i.Window.Block.Activity
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s - %s | %s",
		scheduler.FormatMinutes(i.Window.Start), scheduler.FormatMinutes(i.Window.End), i.Window.Block.Category)
	if i.Window.Block.AlarmEnabled {
		desc += " | alarm"
	}
	if i.Window.Block.IsExtra {
		desc += " | extra"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Window.Block.Activity }

type KeyMap struct {
	Add      key.Binding
	Extra    key.Binding
	Later    key.Binding
	Earlier  key.Binding
	Delete   key.Binding
	Complete key.Binding
	Alarm    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Extra: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "extra task"),
		),
		Later: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", fmt.Sprintf("+%dm", constants.ShiftStepMin)),
		),
		Earlier: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", fmt.Sprintf("-%dm", constants.ShiftStepMin)),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Alarm: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "alarm"),
		),
	}
}

func (k KeyMap) bindings() []key.Binding {
	return []key.Binding{k.Add, k.Extra, k.Later, k.Earlier, k.Delete, k.Complete, k.Alarm}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Routine"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	return Model{list: l, keys: keys}
}

// SetRoutine replaces the items. The cursor follows the block it was on, or
// stays at the same position when that block is gone.
func (m *Model) SetRoutine(r models.Routine, now time.Time) {
	selected := m.SelectedID()
	index := m.list.Index()

	status := scheduler.Resolve(r.Blocks, now)
	windows := scheduler.Windows(r.Blocks)
	items := make([]list.Item, len(windows))
	for i, w := range windows {
		items[i] = Item{Window: w, Active: i == status.Index}
		if w.Block.ID == selected {
			index = i
		}
	}
	m.list.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		m.list.Select(index)
	}
}

// SelectedID is the id of the block under the cursor, or "".
func (m Model) SelectedID() string {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Window.Block.ID
	}
	return ""
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		id := m.SelectedID()
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddBlockMsg{} }
		case key.Matches(msg, m.keys.Extra):
			return m, func() tea.Msg { return ExtraBlockMsg{} }
		}
		if id != "" {
			switch {
			case key.Matches(msg, m.keys.Later):
				return m, func() tea.Msg { return ShiftBlockMsg{ID: id, Delta: constants.ShiftStepMin} }
			case key.Matches(msg, m.keys.Earlier):
				return m, func() tea.Msg { return ShiftBlockMsg{ID: id, Delta: -constants.ShiftStepMin} }
			case key.Matches(msg, m.keys.Delete):
				return m, func() tea.Msg { return DeleteBlockMsg{ID: id} }
			case key.Matches(msg, m.keys.Complete):
				return m, func() tea.Msg { return CompleteBlockMsg{ID: id} }
			case key.Matches(msg, m.keys.Alarm):
				return m, func() tea.Msg { return ToggleAlarmMsg{ID: id} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No blocks yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Keys returns the component bindings for the help view.
func (m Model) Keys() []key.Binding {
	return m.keys.bindings()
}
