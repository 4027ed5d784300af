package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daychain/internal/chain"
	"github.com/julianstephens/daychain/internal/config"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/reminder"
	"github.com/julianstephens/daychain/internal/storage"
	"github.com/julianstephens/daychain/internal/tui/components/almanac"
	"github.com/julianstephens/daychain/internal/tui/components/blocklist"
	"github.com/julianstephens/daychain/internal/tui/components/now"
	"github.com/julianstephens/daychain/internal/validation"
)

type SessionState int

const (
	StateNow SessionState = iota
	StateRoutine
	StateChain
	StateAddBlock
	StateAddExtra
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

type BlockFormModel struct {
	Time     string
	Activity string
	Category models.Category
	Alarm    bool
}

type Model struct {
	state     *storage.State
	cfg       config.Config
	clock     func() time.Time
	session   SessionState
	keys      KeyMap
	help      help.Model
	nowModel  now.Model
	blocks    blocklist.Model
	almanac   almanac.Model
	form      *huh.Form
	blockForm *BlockFormModel
	quitting  bool
	width     int
	height    int

	catalog   models.Catalog
	chain     chain.Chain
	reminders reminder.Set

	// err is the last failed save, shown until the next successful one.
	err               string
	validationWarning string
}

func NewModel(state *storage.State, cfg config.Config, clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}
	m := Model{
		state:    state,
		cfg:      cfg,
		clock:    clock,
		session:  StateNow,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		nowModel: now.New(clock()),
		blocks:   blocklist.New(0, 0),
		almanac:  almanac.New(0, 0),
	}
	m.reload()
	return m
}

// reload reads every record from storage and refreshes the components.
func (m *Model) reload() {
	m.catalog = m.state.LoadCatalog()
	m.chain = m.state.LoadChain()
	m.reminders = m.state.LoadReminders()
	m.refresh()
}

func (m *Model) refresh() {
	t := m.nowModel.Time
	current, _ := m.catalog.Current()
	m.nowModel.Routine = current
	m.nowModel.Reminders = m.reminders
	m.nowModel.Streak = chain.Streak(m.chain, t)
	m.blocks.SetRoutine(current, t)
	m.almanac.SetChain(chain.Window(m.chain, t, m.cfg.History.Days), m.nowModel.Streak)
	m.updateValidationStatus()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Hydration, m.keys.Movement}
	switch m.session {
	case StateRoutine:
		keys = append(keys, m.blocks.Keys()...)
	case StateChain:
		keys = append(keys, m.keys.ToggleToday)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	reminders := []key.Binding{m.keys.Hydration, m.keys.Movement}

	var actions []key.Binding
	switch m.session {
	case StateRoutine:
		actions = m.blocks.Keys()
	case StateChain:
		actions = []key.Binding{m.keys.ToggleToday}
	}
	return [][]key.Binding{global, reminders, actions}
}

func (m Model) Init() tea.Cmd {
	return m.nowModel.Init()
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus() {
	current, ok := m.catalog.Current()
	if !ok {
		m.validationWarning = ""
		return
	}
	result := validation.New().ValidateRoutine(current)
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
