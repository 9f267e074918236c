package tui

import (
	"github.com/charmbracelet/lipgloss"

	"notes-client/internal/notify"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	formStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(9)

	statusStyles = map[notify.Level]lipgloss.Style{
		notify.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		notify.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		notify.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)
