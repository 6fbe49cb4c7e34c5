package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan for the title
	colorAccent     = lipgloss.Color("#FFD700") // Gold for difficulty
	colorSuccess    = lipgloss.Color("#00E676") // Green for saved
	colorDanger     = lipgloss.Color("#FF5252") // Red for decode errors
	colorMuted      = lipgloss.Color("#636363") // Gray for help text
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray for names
	colorBlue       = lipgloss.Color("#5B8DEF") // Blue for the focused row
)

// Selection indicator prepended to the focused row.
const selectionIndicator = "▎"

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleIndicator = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	styleName = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleDifficulty = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger)

	styleSaved = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleStats = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted).
			Foreground(colorMutedLight)
)
