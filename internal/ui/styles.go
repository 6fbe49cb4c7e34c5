package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan for headings
	colorAccent  = lipgloss.Color("#FFD700") // Gold for difficulty and totals
	colorSuccess = lipgloss.Color("#00E676") // Green for valid sheets
	colorDanger  = lipgloss.Color("#FF5252") // Red for errors
	colorMuted   = lipgloss.Color("#8C8C8C") // Gray for secondary text
)

// Status icons.
const (
	iconOK      = "✓"
	iconFailed  = "✗"
	iconRemoved = "–"
)

// styles binds the palette to one renderer so color is only emitted when the
// destination supports it.
type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	danger  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Foreground(colorPrimary).Bold(true),
		label:   r.NewStyle().Foreground(colorMuted),
		value:   r.NewStyle().Foreground(colorAccent).Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
		ok:      r.NewStyle().Foreground(colorSuccess).Bold(true),
		danger:  r.NewStyle().Foreground(colorDanger).Bold(true),
	}
}
