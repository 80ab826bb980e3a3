package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - logo, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// UI semantic colors
const (
	ColorError   Color = "196" // Bright red
	ColorMuted   Color = "241" // Gray - secondary text
	ColorNormal  Color = "250" // Default text
	ColorSubtle  Color = "245" // Light gray - labels
	ColorVersion Color = "240" // Dark gray
)

// Attempt outcome colors
const (
	ColorClosed    Color = "8" // Gray
	ColorConnected Color = "2" // Green
	ColorFailed    Color = "1" // Red
	ColorPending   Color = "3" // Yellow
)
