package style

import (
	"regexp"
	"strings"
)

// escapedBracket stands in for a literal "[" until styling is done
const escapedBracket = "\uE000"

// Escape protects text that must not be read as markup, such as paths and
// commands taken from config documents.
func Escape(text string) string {
	return strings.ReplaceAll(text, "[", escapedBracket)
}

// MarkupParser replaces [tag]text[/tag] spans with styled text
type MarkupParser struct {
	tags []markupTag
}

type markupTag struct {
	pattern *regexp.Regexp
	style   func(...string) string
}

// NewMarkupParser creates a parser using the styles of theme
func NewMarkupParser(theme Theme) *MarkupParser {
	p := &MarkupParser{}
	p.AddStyle("header", theme.Header.Render)
	p.AddStyle("section", theme.Section.Render)
	p.AddStyle("path", theme.Path.Render)
	p.AddStyle("command", theme.Command.Render)
	p.AddStyle("link", theme.Link.Render)
	p.AddStyle("muted", theme.Muted.Render)
	p.AddStyle("success", theme.Success.Render)
	p.AddStyle("warning", theme.Warning.Render)
	p.AddStyle("error", theme.Error.Render)
	p.AddStyle("info", theme.Info.Render)
	return p
}

// AddStyle registers a tag
func (p *MarkupParser) AddStyle(tag string, render func(...string) string) {
	p.tags = append(p.tags, markupTag{
		pattern: regexp.MustCompile(`(?s)\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`),
		style:   render,
	})
}

// Render processes markup text and returns styled output.
// Nested tags are resolved by repeated passes. Escaped text is restored
// verbatim.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		before := result
		for _, tag := range p.tags {
			result = tag.pattern.ReplaceAllStringFunc(result, func(match string) string {
				sub := tag.pattern.FindStringSubmatch(match)
				return tag.style(sub[1])
			})
		}
		if result == before {
			return strings.ReplaceAll(result, escapedBracket, "[")
		}
	}
}
