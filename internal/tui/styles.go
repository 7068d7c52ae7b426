package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#6B7280")
	successColor   = lipgloss.Color("#10B981")
	dangerColor    = lipgloss.Color("#EF4444")

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	// List
	groupHeaderStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	rowStyle = lipgloss.NewStyle()

	emptyListStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	// Output log
	infoMsgStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	errorMsgStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	// Search input
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(primaryColor)
)
