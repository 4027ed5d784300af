package tui

import "github.com/charmbracelet/lipgloss"

// palette
var (
	accent = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#9D8CFF"}
	subtle = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	alarm  = lipgloss.Color("#E5484D")
	amber  = lipgloss.Color("#F5A524")
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(subtle)
	activeTabStyle = tabStyle.Foreground(accent).Bold(true).Underline(true)

	// badgeStyle renders the routine name and streak at the end of the tab bar.
	badgeStyle = lipgloss.NewStyle().MarginLeft(2).Foreground(subtle).Italic(true)

	errorStyle   = lipgloss.NewStyle().Foreground(alarm).Bold(true).PaddingLeft(2)
	warningStyle = lipgloss.NewStyle().Foreground(amber).PaddingLeft(2)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
