package display

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	loserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	handStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("140"))

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2)
)
