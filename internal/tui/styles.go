package tui

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("25", "75")
	colorError    lipgloss.TerminalColor = ac("160", "203")
	colorSelected lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorHigh     lipgloss.TerminalColor = ac("160", "203")
	colorMedium   lipgloss.TerminalColor = ac("130", "214")
	colorLow      lipgloss.TerminalColor = ac("28", "114")
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	footerStyle   = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	selectedStyle = lipgloss.NewStyle().Background(colorSelected).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	labelStyle    = lipgloss.NewStyle().Width(12).Foreground(colorMuted)
	focusLabel    = labelStyle.Foreground(colorAccent).Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)

func priorityStyle(p string) lipgloss.Style {
	switch p {
	case "High":
		return lipgloss.NewStyle().Foreground(colorHigh)
	case "Medium":
		return lipgloss.NewStyle().Foreground(colorMedium)
	case "Low":
		return lipgloss.NewStyle().Foreground(colorLow)
	}
	return mutedStyle
}
