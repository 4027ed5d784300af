package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daychain/internal/chain"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.session {
	case StateNow:
		content = m.nowModel.View()
	case StateRoutine:
		content = docStyle.Render(m.blocks.View())
	case StateChain:
		content = docStyle.Render(m.almanac.View())
	case StateAddBlock, StateAddExtra:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.session
	if active >= tabCount {
		active = StateRoutine
	}
	var tabs []string
	for i, title := range []string{"Now", "Routine", "Chain"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, tabStyle.Render(title))
		}
	}

	badge := fmt.Sprintf("streak %d", chain.Streak(m.chain, m.clock()))
	if r, ok := m.catalog.Current(); ok {
		badge = r.Name + " · " + badge
	}
	tabs = append(tabs, badgeStyle.Render(badge))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != "" {
		return errorStyle.Render(m.err)
	}
	if m.validationWarning != "" {
		return warningStyle.Render(m.validationWarning)
	}
	return ""
}
