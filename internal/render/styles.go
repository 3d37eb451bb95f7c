package render

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor  = lipgloss.Color("#7C3AED") // Purple
	PositiveColor = lipgloss.Color("#10B981") // Green
	NegativeColor = lipgloss.Color("#EF4444") // Red
	NeutralColor  = lipgloss.Color("#6B7280") // Gray
	AccentColor   = lipgloss.Color("#F59E0B") // Amber

	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// styles are bound to one renderer so color detection follows the output writer.
type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	symbol   lipgloss.Style
	positive lipgloss.Style
	negative lipgloss.Style
	neutral  lipgloss.Style
	muted    lipgloss.Style
	link     lipgloss.Style
	warn     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(PrimaryColor),
		header: r.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor),
		symbol: r.NewStyle().
			Bold(true).
			Foreground(AccentColor),
		positive: r.NewStyle().Foreground(PositiveColor),
		negative: r.NewStyle().Foreground(NegativeColor),
		neutral:  r.NewStyle().Foreground(NeutralColor),
		muted:    r.NewStyle().Foreground(TextMutedColor),
		link: r.NewStyle().
			Foreground(TextSecondaryColor).
			Underline(true),
		warn: r.NewStyle().
			Bold(true).
			Foreground(NegativeColor),
	}
}
