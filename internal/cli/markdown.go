package cli

import (
	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/cuepine/pkg/logging"
)

// markdownRenderer turns markdown into styled terminal text with glamour
type markdownRenderer struct {
	Style string // "auto" or a glamour standard style such as "dark" or "notty"
	Width int    // word wrap width, 0 leaves glamour's default
}

func newMarkdownRenderer(tty bool) *markdownRenderer {
	r := &markdownRenderer{Style: "auto"}
	if !tty {
		r.Style = "notty"
	}
	return r
}

// Render returns content unchanged when glamour fails
func (r *markdownRenderer) Render(content string) string {
	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStandardStyle(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	logger := logging.GetLogger("cli.markdown")
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		logger.Debug().Err(err).Msg("Markdown renderer unavailable, printing raw text")
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		logger.Debug().Err(err).Msg("Markdown rendering failed, printing raw text")
		return content
	}
	return rendered
}
