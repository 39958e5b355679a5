package style_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/cuepine/pkg/style"
	"github.com/stretchr/testify/assert"
)

func plainTheme() style.Theme {
	return style.NewTheme(style.NewRenderer(&bytes.Buffer{}, style.ColorNever))
}

func TestMarkupParser_Render(t *testing.T) {
	p := style.NewMarkupParser(plainTheme())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain_text",
			input:    "nothing to style",
			expected: "nothing to style",
		},
		{
			name:     "single_tag",
			input:    "[section]Pre-scripts[/section]",
			expected: "Pre-scripts",
		},
		{
			name:     "several_tags",
			input:    "[link]~/bin/foo[/link] -> [path]/src/foo.sh[/path]",
			expected: "~/bin/foo -> /src/foo.sh",
		},
		{
			name:     "nested_tags",
			input:    "[error]failed: [command]make[/command][/error]",
			expected: "failed: make",
		},
		{
			name:     "escaped_text_verbatim",
			input:    "[path]" + style.Escape("notes/[error]x[/error]") + "[/path]",
			expected: "notes/[error]x[/error]",
		},
		{
			name:     "unknown_tag_kept",
			input:    "[blink]x[/blink]",
			expected: "[blink]x[/blink]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Render(tt.input))
		})
	}
}

func TestMarkupParser_AddStyle(t *testing.T) {
	p := style.NewMarkupParser(plainTheme())
	p.AddStyle("shout", func(s ...string) string { return s[0] + "!" })

	assert.Equal(t, "hey!", p.Render("[shout]hey[/shout]"))
}

func TestNewRenderer_ColorModes(t *testing.T) {
	var buf bytes.Buffer

	never := style.NewTheme(style.NewRenderer(&buf, style.ColorNever))
	assert.Equal(t, "ok", never.Success.Render("ok"))

	// A buffer is not a terminal, so auto means plain text
	auto := style.NewTheme(style.NewRenderer(&buf, style.ColorAuto))
	assert.Equal(t, "ok", auto.Success.Render("ok"))

	always := style.NewTheme(style.NewRenderer(&buf, style.ColorAlways))
	assert.Contains(t, always.Success.Render("ok"), "\x1b[")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "Hello", style.Indent("Hello", 0))
	assert.Equal(t, "    Hello", style.Indent("Hello", 2))
}
