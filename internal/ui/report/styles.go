package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
)

type styles struct {
	title   lipgloss.Style
	passed  lipgloss.Style
	failed  lipgloss.Style
	errored lipgloss.Style
	dim     lipgloss.Style
	name    lipgloss.Style
}

// newStyles binds the palette to a renderer. Without color every style
// renders as plain text.
func newStyles(r *lipgloss.Renderer, color bool) styles {
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorWhite),
		passed:  r.NewStyle().Foreground(colorGreen),
		failed:  r.NewStyle().Foreground(colorRed),
		errored: r.NewStyle().Foreground(colorYellow),
		dim:     r.NewStyle().Foreground(colorDim),
		name:    r.NewStyle().Bold(true),
	}
}
