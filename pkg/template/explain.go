package template

import (
	"bytes"
	_ "embed"
	tmpl "text/template"

	"github.com/arthur-debert/cuepine/pkg/document"
	"github.com/arthur-debert/cuepine/pkg/errors"
)

//go:embed explain.md.tmpl
var explainSource string

var explainTemplate = tmpl.Must(tmpl.New("explain").Parse(explainSource))

// fences maps formats to markdown code fence languages
var fences = map[document.Format]string{
	document.FormatJSON:    "json",
	document.FormatYAML:    "yaml",
	document.FormatTOML:    "toml",
	document.FormatHCL:     "hcl",
	document.FormatLiteral: "python",
}

// Explain returns markdown describing the document schema, followed by an
// example written in format.
func Explain(format document.Format) (string, error) {
	example, err := Encode(format, Example())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = explainTemplate.Execute(&buf, struct {
		ConfigName string
		Fence      string
		Example    string
	}{
		ConfigName: "install." + string(format),
		Fence:      fences[format],
		Example:    example,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot render config explanation")
	}
	return buf.String(), nil
}
