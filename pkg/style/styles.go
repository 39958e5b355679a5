package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects when styled output is colored
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Theme holds the styles used by the terminal reporter, bound to one renderer
type Theme struct {
	Header  lipgloss.Style
	Section lipgloss.Style
	Path    lipgloss.Style
	Command lipgloss.Style
	Link    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w honouring mode and NO_COLOR
func NewRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch {
	case mode == ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case mode == ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case os.Getenv("NO_COLOR") != "" || !isTerminal(w):
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewTheme builds the reporter styles on r
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Header: r.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Underline(true),
		Section: r.NewStyle().
			Foreground(HeadingColor).
			Bold(true),
		Path:    r.NewStyle().Foreground(SecondaryColor).Italic(true),
		Command: r.NewStyle().Foreground(CommandColor),
		Link:    r.NewStyle().Foreground(LinkColor).Bold(true),
		Muted:   r.NewStyle().Foreground(MutedColor),
		Success: r.NewStyle().Foreground(SuccessColor).Bold(true),
		Warning: r.NewStyle().Foreground(WarningColor).Bold(true),
		Error:   r.NewStyle().Foreground(ErrorColor).Bold(true),
		Info:    r.NewStyle().Foreground(InfoColor),
	}
}

// Indicators for entry and operation outcomes
const (
	SuccessIndicator = "✓"
	ErrorIndicator   = "✗"
	WarningIndicator = "!"
	InfoIndicator    = "•"
	PendingIndicator = "○"
)

// Indent prefixes s with two spaces per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
