package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/document"
	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Render prints the skeleton document in format
func Render(format document.Format) (string, error) {
	return Encode(format, Skeleton())
}

// Encode serializes doc in format
func Encode(format document.Format, doc Document) (string, error) {
	var (
		out []byte
		err error
	)

	switch format {
	case document.FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		err = enc.Encode(doc)
		out = buf.Bytes()
	case document.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		out = buf.Bytes()
	case document.FormatTOML:
		out, err = toml.Marshal(doc)
	case document.FormatHCL:
		out = encodeHCL(doc)
	case document.FormatLiteral:
		out = encodeLiteral(doc)
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported template format %q", format)
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "cannot encode %s template", format)
	}
	return strings.TrimRight(string(out), "\n") + "\n", nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HCL

func encodeHCL(doc Document) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, kv := range []struct {
		name   string
		values []string
		always bool
	}{
		{"pre", doc.Pre, false},
		{"post", doc.Post, false},
		{"dependencies", doc.Dependencies, true},
		{"opt_dependencies", doc.OptDependencies, false},
	} {
		if len(kv.values) == 0 && !kv.always {
			continue
		}
		body.SetAttributeValue(kv.name, stringList(kv.values))
	}

	var categories []hclwrite.ObjectAttrTokens
	for _, category := range sortedNames(doc.Installation) {
		entries := doc.Installation[category]
		var items []hclwrite.ObjectAttrTokens
		for _, name := range sortedNames(entries) {
			items = append(items, hclwrite.ObjectAttrTokens{
				Name:  hclKey(name),
				Value: entryTokens(entries[name]),
			})
		}
		categories = append(categories, hclwrite.ObjectAttrTokens{
			Name:  hclKey(category),
			Value: hclwrite.TokensForObject(items),
		})
	}
	body.SetAttributeRaw("installation", hclwrite.TokensForObject(categories))

	return hclwrite.Format(f.Bytes())
}

func entryTokens(e Entry) hclwrite.Tokens {
	attrs := []hclwrite.ObjectAttrTokens{
		{Name: hclwrite.TokensForIdentifier("dir"), Value: hclwrite.TokensForValue(cty.StringVal(e.Dir))},
	}
	if len(e.Files) > 0 {
		attrs = append(attrs, hclwrite.ObjectAttrTokens{
			Name:  hclwrite.TokensForIdentifier("files"),
			Value: hclwrite.TokensForValue(stringList(e.Files)),
		})
	}
	if len(e.RenamedFiles) > 0 {
		var items []hclwrite.Tokens
		for _, rf := range e.RenamedFiles {
			items = append(items, hclwrite.TokensForObject([]hclwrite.ObjectAttrTokens{
				{Name: hclwrite.TokensForIdentifier("src"), Value: hclwrite.TokensForValue(cty.StringVal(rf.Src))},
				{Name: hclwrite.TokensForIdentifier("dst"), Value: hclwrite.TokensForValue(cty.StringVal(rf.Dst))},
			}))
		}
		attrs = append(attrs, hclwrite.ObjectAttrTokens{
			Name:  hclwrite.TokensForIdentifier("renamed_files"),
			Value: hclwrite.TokensForTuple(items),
		})
	}
	attrs = append(attrs, hclwrite.ObjectAttrTokens{
		Name:  hclwrite.TokensForIdentifier("strip_ext"),
		Value: hclwrite.TokensForValue(cty.BoolVal(e.StripExt)),
	})
	if e.Condition != nil {
		attrs = append(attrs, hclwrite.ObjectAttrTokens{
			Name:  hclwrite.TokensForIdentifier("condition"),
			Value: hclwrite.TokensForValue(cty.StringVal(*e.Condition)),
		})
	}
	return hclwrite.TokensForObject(attrs)
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}

func hclKey(name string) hclwrite.Tokens {
	if hclsyntax.ValidIdentifier(name) {
		return hclwrite.TokensForIdentifier(name)
	}
	return hclwrite.TokensForValue(cty.StringVal(name))
}

// Literal expression (install.py)

func encodeLiteral(doc Document) []byte {
	w := &literalWriter{}
	w.open("{")
	w.strings("pre", doc.Pre, false)
	w.strings("post", doc.Post, false)
	w.strings("dependencies", doc.Dependencies, true)
	w.strings("opt_dependencies", doc.OptDependencies, false)

	w.open(quote("installation") + ": {")
	for _, category := range sortedNames(doc.Installation) {
		entries := doc.Installation[category]
		w.open(quote(category) + ": {")
		for _, name := range sortedNames(entries) {
			e := entries[name]
			w.open(quote(name) + ": {")
			w.line(quote("dir") + ": " + quote(e.Dir) + ",")
			w.strings("files", e.Files, false)
			if len(e.RenamedFiles) > 0 {
				w.open(quote("renamed_files") + ": [")
				for _, rf := range e.RenamedFiles {
					w.line(fmt.Sprintf("{%s: %s, %s: %s},", quote("src"), quote(rf.Src), quote("dst"), quote(rf.Dst)))
				}
				w.close("],")
			}
			w.line(quote("strip_ext") + ": " + pyBool(e.StripExt) + ",")
			if e.Condition != nil {
				w.line(quote("condition") + ": " + quote(*e.Condition) + ",")
			}
			w.close("},")
		}
		w.close("},")
	}
	w.close("},")
	w.close("}")
	return w.buf.Bytes()
}

type literalWriter struct {
	buf    bytes.Buffer
	indent int
}

func (w *literalWriter) line(s string) {
	w.buf.WriteString(strings.Repeat("    ", w.indent))
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

func (w *literalWriter) open(s string) {
	w.line(s)
	w.indent++
}

func (w *literalWriter) close(s string) {
	w.indent--
	w.line(s)
}

func (w *literalWriter) strings(key string, values []string, always bool) {
	if len(values) == 0 && !always {
		return
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	w.line(fmt.Sprintf("%s: [%s],", quote(key), strings.Join(quoted, ", ")))
}

// quote produces a double-quoted literal that Python and Starlark both read
func quote(s string) string {
	return strconv.Quote(s)
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
