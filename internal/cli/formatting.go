package cli

import (
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// helpStyling reports whether help output may carry terminal styling
func helpStyling() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func styled(style *pterm.Style) func(string) string {
	return func(s string) string {
		if !helpStyling() {
			return s
		}
		return style.Sprint(s)
	}
}

// initTemplateFormatting registers the help template funcs:
// section headings are bold upper case, command names cyan.
func initTemplateFormatting() {
	bold := styled(pterm.NewStyle(pterm.Bold))
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      bold,
		"upper":     strings.ToUpper,
		"boldUpper": func(s string) string { return bold(strings.ToUpper(s)) },
		"command":   styled(pterm.NewStyle(pterm.FgCyan)),
	})
}
