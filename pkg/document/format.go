package document

import (
	"path/filepath"
	"strings"
)

// Format identifies the serialization of a config document
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatHCL     Format = "hcl"
	FormatLiteral Format = "py"
)

// Formats lists every supported format in discovery priority order
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatHCL, FormatLiteral}

// Extensions returns the file extensions (without dot) mapped to the format
func (f Format) Extensions() []string {
	switch f {
	case FormatYAML:
		return []string{"yaml", "yml"}
	case FormatLiteral:
		return []string{"py"}
	}
	return []string{string(f)}
}

// FormatFromPath selects the format from a file name's extension
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ParseFormat(ext)
}

// ParseFormat accepts a format name or one of its extensions
func ParseFormat(name string) (Format, bool) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	for _, f := range Formats {
		for _, ext := range f.Extensions() {
			if name == ext {
				return f, true
			}
		}
	}
	if name == "python" || name == "literal" {
		return FormatLiteral, true
	}
	return "", false
}

func (f Format) String() string {
	return string(f)
}
