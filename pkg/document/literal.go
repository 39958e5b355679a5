package document

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"go.starlark.net/syntax"
)

// decodeLiteral parses a single data-literal expression (dicts, lists,
// tuples, strings, numbers, True/False/None). The parse tree is walked, never
// executed.
func decodeLiteral(data []byte, filename string) (map[string]interface{}, error) {
	src, err := joinAdjacentStrings(bytes.TrimSpace(data), filename)
	if err != nil {
		return nil, err
	}
	expr, err := syntax.ParseExpr(filename, src, 0)
	if err != nil {
		return nil, err
	}

	raw, err := literalValue(expr)
	if err != nil {
		return nil, err
	}
	return asRoot(raw)
}

func literalValue(expr syntax.Expr) (interface{}, error) {
	switch e := expr.(type) {
	case *syntax.Literal:
		switch v := e.Value.(type) {
		case string:
			return v, nil
		case int64:
			return v, nil
		case *big.Int:
			if v.IsInt64() {
				return v.Int64(), nil
			}
			return nil, notLiteral(e, "integer out of range")
		case float64:
			return v, nil
		}
		return nil, notLiteral(e, fmt.Sprintf("unsupported literal %s", e.Raw))

	case *syntax.Ident:
		switch e.Name {
		case "True":
			return true, nil
		case "False":
			return false, nil
		case "None":
			return nil, nil
		}
		return nil, notLiteral(e, fmt.Sprintf("name %q is not a literal", e.Name))

	case *syntax.ParenExpr:
		return literalValue(e.X)

	case *syntax.UnaryExpr:
		if e.Op != syntax.MINUS && e.Op != syntax.PLUS {
			return nil, notLiteral(e, "operators are not allowed")
		}
		v, err := literalValue(e.X)
		if err != nil {
			return nil, err
		}
		sign := int64(1)
		if e.Op == syntax.MINUS {
			sign = -1
		}
		switch n := v.(type) {
		case int64:
			return sign * n, nil
		case float64:
			return float64(sign) * n, nil
		}
		return nil, notLiteral(e, "sign applied to a non-number")

	case *syntax.ListExpr:
		return literalList(e.List)

	case *syntax.TupleExpr:
		return literalList(e.List)

	case *syntax.DictExpr:
		dict := make(map[string]interface{}, len(e.List))
		for _, item := range e.List {
			entry, ok := item.(*syntax.DictEntry)
			if !ok {
				return nil, notLiteral(item, "malformed dict entry")
			}
			key, err := literalValue(entry.Key)
			if err != nil {
				return nil, err
			}
			name, ok := key.(string)
			if !ok {
				return nil, notLiteral(entry.Key, "dict keys must be strings")
			}
			value, err := literalValue(entry.Value)
			if err != nil {
				return nil, err
			}
			dict[name] = value
		}
		return dict, nil
	}

	return nil, notLiteral(expr, fmt.Sprintf("%T is not a literal", expr))
}

func literalList(items []syntax.Expr) ([]interface{}, error) {
	list := make([]interface{}, 0, len(items))
	for _, item := range items {
		v, err := literalValue(item)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

func notLiteral(expr syntax.Expr, msg string) error {
	start, _ := expr.Span()
	return fmt.Errorf("%s: %s", start, msg)
}

// stringToken is the byte span of one string literal in the source
type stringToken struct {
	start, end int
}

// joinAdjacentStrings folds implicitly concatenated string literals
// ('a' 'b', as pprint wraps long strings) into one quoted literal.
// Explicit operators are left alone and rejected later.
func joinAdjacentStrings(src []byte, filename string) ([]byte, error) {
	tokens := scanStrings(src)
	if len(tokens) < 2 {
		return src, nil
	}

	var out bytes.Buffer
	last := 0
	for i := 0; i < len(tokens); {
		j := i
		for j+1 < len(tokens) && onlySpaceOrComments(src[tokens[j].end:tokens[j+1].start]) {
			j++
		}
		if j == i {
			i++
			continue
		}

		var joined strings.Builder
		for _, tok := range tokens[i : j+1] {
			v, err := stringValue(src[tok.start:tok.end], filename)
			if err != nil {
				return nil, err
			}
			joined.WriteString(v)
		}
		out.Write(src[last:tokens[i].start])
		out.WriteString(strconv.Quote(joined.String()))
		last = tokens[j].end
		i = j + 1
	}
	if last == 0 {
		return src, nil
	}
	out.Write(src[last:])
	return out.Bytes(), nil
}

func stringValue(raw []byte, filename string) (string, error) {
	tok := bytes.TrimLeft(raw, "uU")
	expr, err := syntax.ParseExpr(filename, tok, 0)
	if err != nil {
		return "", err
	}
	if lit, ok := expr.(*syntax.Literal); ok {
		if v, ok := lit.Value.(string); ok {
			return v, nil
		}
	}
	return "", notLiteral(expr, "only text strings can be concatenated")
}

// scanStrings finds string literals outside comments, with their prefixes
func scanStrings(src []byte) []stringToken {
	var tokens []stringToken
	for i := 0; i < len(src); {
		c := src[i]
		if c == '#' {
			for i < len(src) && src[i] != '\n' {
				i++
			}
			continue
		}

		start := i
		q := i
		for q < len(src) && q-start < 2 && strings.IndexByte("rRbBuU", src[q]) >= 0 {
			q++
		}
		if q >= len(src) || (src[q] != '\'' && src[q] != '"') || (start > 0 && isIdentByte(src[start-1])) {
			i++
			continue
		}

		quote := src[q]
		triple := q+2 < len(src) && src[q+1] == quote && src[q+2] == quote
		j := q + 1
		if triple {
			j = q + 3
		}
		for j < len(src) {
			if src[j] == '\\' {
				j += 2
				continue
			}
			if src[j] == quote {
				if !triple {
					j++
					break
				}
				if j+2 < len(src) && src[j+1] == quote && src[j+2] == quote {
					j += 3
					break
				}
			}
			j++
		}
		if j > len(src) {
			j = len(src)
		}
		tokens = append(tokens, stringToken{start: start, end: j})
		i = j
	}
	return tokens
}

func isIdentByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func onlySpaceOrComments(gap []byte) bool {
	for _, line := range bytes.Split(gap, []byte("\n")) {
		if k := bytes.IndexByte(line, '#'); k >= 0 {
			line = line[:k]
		}
		if len(bytes.TrimSpace(line)) > 0 {
			return false
		}
	}
	return true
}
