package output

import (
	"io"

	"livery-audit/core/logger"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette.
var (
	// ColorCyan is used for vehicle types and livery ids.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for satisfied audits.
	ColorGreen = lipgloss.Color("10")

	// ColorBoldRed is used for unmet requirements.
	ColorBoldRed = lipgloss.Color("204")

	// ColorYellow is used for missing liveries of an installed type.
	ColorYellow = lipgloss.Color("220")
)

// Styles groups the styles used by a Printer. All of them come from one
// renderer so they share its color profile.
type Styles struct {
	Noun    lipgloss.Style
	Title   lipgloss.Style
	Dim     lipgloss.Style
	OK      lipgloss.Style
	Failed  lipgloss.Style
	Missing lipgloss.Style
}

// NewStyles creates styles for output written to w.
// ColorAuto lets the renderer inspect w; non-terminals get no color.
func NewStyles(w io.Writer, mode logger.ColorMode) Styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case logger.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case logger.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	}

	return Styles{
		Noun:    r.NewStyle().Foreground(ColorCyan),
		Title:   r.NewStyle().Bold(true),
		Dim:     r.NewStyle().Faint(true),
		OK:      r.NewStyle().Foreground(ColorGreen),
		Failed:  r.NewStyle().Bold(true).Foreground(ColorBoldRed),
		Missing: r.NewStyle().Foreground(ColorYellow),
	}
}
