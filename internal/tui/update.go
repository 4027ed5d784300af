package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daychain/internal/chain"
	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/logger"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/routine"
	"github.com/julianstephens/daychain/internal/tui/components/blocklist"
	"github.com/julianstephens/daychain/internal/tui/components/now"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// the tick keeps running while a form is open
	if msg, ok := msg.(now.TickMsg); ok {
		return m.tick(msg)
	}
	if m.session == StateAddBlock || m.session == StateAddExtra {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, help and the status line
		body := msg.Height - 4
		m.nowModel.SetSize(msg.Width, body)
		m.blocks.SetSize(msg.Width-4, body-2)
		m.almanac.SetSize(msg.Width-4, body-2)
		return m, nil

	case blocklist.AddBlockMsg:
		m.blockForm = &BlockFormModel{Time: constants.DefaultBlockTime, Category: models.CategoryPersonal}
		m.form = NewBlockForm(m.blockForm)
		m.session = StateAddBlock
		return m, m.form.Init()

	case blocklist.ExtraBlockMsg:
		m.blockForm = &BlockFormModel{}
		m.form = NewExtraForm(m.blockForm)
		m.session = StateAddExtra
		return m, m.form.Init()

	case blocklist.ShiftBlockMsg:
		m.applyRoutine(func(r models.Routine) models.Routine { return routine.ShiftBlock(r, msg.ID, msg.Delta) })
		return m, nil

	case blocklist.DeleteBlockMsg:
		m.applyRoutine(func(r models.Routine) models.Routine { return routine.DeleteBlock(r, msg.ID) })
		return m, nil

	case blocklist.CompleteBlockMsg:
		m.applyRoutine(func(r models.Routine) models.Routine { return routine.CompleteBlock(r, msg.ID) })
		return m, nil

	case blocklist.ToggleAlarmMsg:
		m.applyRoutine(func(r models.Routine) models.Routine { return routine.ToggleAlarm(r, msg.ID) })
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.session = (m.session + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.session = (m.session - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Hydration):
			m.recordReminder(constants.ReminderHydration)
			return m, nil
		case key.Matches(msg, m.keys.Movement):
			m.recordReminder(constants.ReminderMovement)
			return m, nil
		case m.session == StateChain && key.Matches(msg, m.keys.ToggleToday):
			m.toggleToday()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.session {
	case StateRoutine:
		m.blocks, cmd = m.blocks.Update(msg)
	case StateChain:
		m.almanac, cmd = m.almanac.Update(msg)
	}
	return m, cmd
}

// tick advances the clock. On a new minute every record is re-read, so writes
// from other processes show up.
func (m Model) tick(msg now.TickMsg) (tea.Model, tea.Cmd) {
	prev := m.nowModel.Time
	var cmd tea.Cmd
	m.nowModel, cmd = m.nowModel.Update(msg)
	if !prev.Truncate(time.Minute).Equal(m.nowModel.Time.Truncate(time.Minute)) {
		m.reload()
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.session = StateRoutine
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		fm := m.blockForm
		if m.session == StateAddExtra {
			at := models.ClockOf(m.clock())
			m.applyRoutine(func(r models.Routine) models.Routine { return routine.AddExtraBlock(r, fm.Activity, at) })
		} else {
			at, err := models.ParseClock(strings.TrimSpace(fm.Time))
			if err == nil {
				m.applyRoutine(func(r models.Routine) models.Routine {
					return routine.AddBlock(r, routine.BlockFields{Time: &at, Activity: fm.Activity, Category: fm.Category, AlarmEnabled: fm.Alarm})
				})
			}
		}
		m.session = StateRoutine
	case huh.StateAborted:
		m.session = StateRoutine
	}
	return m, cmd
}

// applyRoutine mutates the routine in use and persists the catalog.
func (m *Model) applyRoutine(fn func(models.Routine) models.Routine) {
	next := routine.Apply(m.catalog, fn)
	if err := m.state.SaveCatalog(next); err != nil {
		m.fail("Failed to save routine", err)
		return
	}
	m.catalog = next
	m.err = ""
	m.refresh()
}

func (m *Model) recordReminder(name string) {
	next := m.reminders.Record(name, m.clock())
	if err := m.state.SaveReminders(next); err != nil {
		m.fail("Failed to save reminders", err)
		return
	}
	m.reminders = next
	m.err = ""
	m.refresh()
}

func (m *Model) toggleToday() {
	next := chain.Toggle(m.chain, chain.Key(m.clock()))
	if err := m.state.SaveChain(next); err != nil {
		m.fail("Failed to save chain", err)
		return
	}
	m.chain = next
	m.err = ""
	m.refresh()
}

func (m *Model) fail(msg string, err error) {
	logger.Error(msg, "error", err)
	m.err = msg + ": " + err.Error()
}
