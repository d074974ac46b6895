package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles is the set of lipgloss styles commands render with. When
// color is disabled every style is a no-op, so callers never need to
// branch on TTY state themselves.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	FilePath lipgloss.Style
}

// newStyles builds the style set. A dedicated lipgloss renderer is
// pinned to the output writer with a forced profile, so styling does
// not depend on process-global terminal detection.
func newStyles(w io.Writer, colored bool) *Styles {
	if !colored {
		plain := lipgloss.NewStyle()
		return &Styles{
			Header1:  plain,
			Header2:  plain,
			Bold:     plain,
			Muted:    plain,
			Success:  plain,
			Error:    plain,
			Warning:  plain,
			Info:     plain,
			FilePath: plain,
		}
	}

	re := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256), termenv.WithTTY(true))
	return &Styles{
		Header1:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Header2:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Bold:     re.NewStyle().Bold(true),
		Muted:    re.NewStyle().Foreground(lipgloss.Color("245")),
		Success:  re.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    re.NewStyle().Foreground(lipgloss.Color("196")),
		Warning:  re.NewStyle().Foreground(lipgloss.Color("214")),
		Info:     re.NewStyle().Foreground(lipgloss.Color("39")),
		FilePath: re.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
	}
}
