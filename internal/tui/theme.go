package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Dark palette — true-color hex values
// ---------------------------------------------------------------------------

const (
	colorBgDark   lipgloss.Color = "#121214"
	colorBgDarker lipgloss.Color = "#0c0c0e"
	colorCard     lipgloss.Color = "#1c1c20"
	colorBorder   lipgloss.Color = "#2d2d32"

	colorText      lipgloss.Color = "#f0f0f5"
	colorSecondary lipgloss.Color = "#a0a0aa"
	colorMuted     lipgloss.Color = "#73737d"

	colorBlue  lipgloss.Color = "#60a5fa"
	colorGreen lipgloss.Color = "#4ade80"
	colorRed   lipgloss.Color = "#f87171"
	colorAmber lipgloss.Color = "#fbbf24"
)

// ---------------------------------------------------------------------------
// Semantic aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorBlue
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorAmber
)

// ---------------------------------------------------------------------------
// Shared styles
// ---------------------------------------------------------------------------

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	tabStyle       = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorCard).Bold(true).Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorBorder)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	dimStyle      = lipgloss.NewStyle().Foreground(colorSecondary)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle     = lipgloss.NewStyle().Foreground(colorWarning)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	footerStyle = lipgloss.NewStyle().Foreground(colorMuted)

	userMsgStyle      = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	assistantMsgStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)

	spinnerStyle = lipgloss.NewStyle().Foreground(colorAccent)

	cursorCellStyle = lipgloss.NewStyle().Reverse(true)
)

// levelStyle picks a render style for a log level string.
func levelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return errorStyle
	case "WARNING":
		return warnStyle
	default:
		return dimStyle
	}
}
