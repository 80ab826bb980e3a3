package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	LogoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Attempt outcome styles
var (
	ClosedStyle = lipgloss.NewStyle().
			Foreground(ColorClosed)

	ConnectedStyle = lipgloss.NewStyle().
			Foreground(ColorConnected)

	FailedStyle = lipgloss.NewStyle().
			Foreground(ColorFailed)

	PendingStyle = lipgloss.NewStyle().
			Foreground(ColorPending)
)
