package almanac

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daychain/internal/chain"
)

var (
	markedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	todayStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("205"))

	streakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 0)
)

type Model struct {
	viewport viewport.Model
	Days     []chain.Day
	Streak   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetChain(days []chain.Day, streak int) {
	m.Days = days
	m.Streak = streak
	m.Render()
}

func (m *Model) Render() {
	var rows []string
	for start := 0; start < len(m.Days); start += 7 {
		end := start + 7
		if end > len(m.Days) {
			end = len(m.Days)
		}
		var cells []string
		for _, d := range m.Days[start:end] {
			label := d.Date[len(d.Date)-2:]
			cell := emptyStyle.Render(label)
			if d.Marked {
				cell = markedStyle.Render(label)
			}
			if d.IsToday {
				cell = todayStyle.Render(cell)
			}
			cells = append(cells, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, cells...))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")
	b.WriteString(streakStyle.Render(fmt.Sprintf("Streak: %d days", m.Streak)))
	b.WriteString("\nPress space to mark or unmark today.")
	m.viewport.SetContent(b.String())
}
