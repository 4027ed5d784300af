package now

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/models"
	"github.com/julianstephens/daychain/internal/reminder"
	"github.com/julianstephens/daychain/internal/scheduler"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#9D8CFF"}
	subtle = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}

	titleStyle = lipgloss.NewStyle().Foreground(accent).Bold(true).MarginBottom(1)
	timeStyle  = lipgloss.NewStyle().Foreground(subtle)
	mutedStyle = lipgloss.NewStyle().Foreground(subtle)

	// activityStyle frames the active block as a card.
	activityStyle = lipgloss.NewStyle().
			Bold(true).
			Width(44).
			Padding(1, 2).
			Align(lipgloss.Center).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(accent)

	levelStyles = map[reminder.Level]lipgloss.Style{
		reminder.LevelFresh:  lipgloss.NewStyle().Foreground(lipgloss.Color("#30A46C")),
		reminder.LevelSteady: lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A524")),
		reminder.LevelDue:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E5484D")).Bold(true).Blink(true),
		reminder.LevelOff:    mutedStyle.Strikethrough(true),
	}
)

type Model struct {
	Routine   models.Routine
	Reminders reminder.Set
	Streak    int
	Time      time.Time
	width     int
	height    int
}

func New(now time.Time) Model {
	return Model{Time: now, Reminders: reminder.Set{}}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.TUITickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.Time = time.Time(msg)
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	status := scheduler.Resolve(m.Routine.Blocks, m.Time)

	var content string
	if status.Active == nil {
		content = activityStyle.Render("Free time")
	} else {
		content = lipgloss.JoinVertical(lipgloss.Center,
			timeStyle.Render(fmt.Sprintf("%s - %s", scheduler.FormatMinutes(status.Window.Start), scheduler.FormatMinutes(status.Window.End))),
			activityStyle.Render(status.Active.Activity),
			mutedStyle.Render(fmt.Sprintf("%s · %s", status.Active.Category, status.Active.Status)),
		)
	}
	if status.UntilNext > 0 {
		label := "left"
		if status.Active == nil {
			label = "until the day starts"
		}
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", countdown(status.UntilNext)+" "+label)
	}
	if status.Next != nil {
		content = lipgloss.JoinVertical(lipgloss.Center, content,
			mutedStyle.Render(fmt.Sprintf("Next: %s %s", status.Next.Time, status.Next.Activity)))
	}

	content = lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("Now: %s · %s", m.Time.Format("15:04:05"), m.Routine.Name)),
		content,
		"",
		m.viewReminders(),
		mutedStyle.Render(fmt.Sprintf("Streak: %d days", m.Streak)),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) viewReminders() string {
	var parts []string
	for _, name := range m.Reminders.Names() {
		level := reminder.LevelAt(m.Reminders[name], m.Time)
		parts = append(parts, fmt.Sprintf("%s: %s", name, levelStyles[level].Render(string(level))))
	}
	return strings.Join(parts, "   ")
}

// countdown renders d as H:MM:SS.
func countdown(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
