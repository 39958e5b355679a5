package document

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// decodeHCL reads top-level attributes only. Expressions are evaluated with
// no variables or functions, so anything beyond literal values fails.
func decodeHCL(data []byte, filename string) (map[string]interface{}, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read HCL attributes: %s", diags.Error())
	}

	tree := make(map[string]interface{}, len(attrs))
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %s", name, diags.Error())
		}
		native, err := ctyToNative(value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		tree[name] = native
	}
	return tree, nil
}

// ctyToNative recursively converts a cty.Value to plain Go values
func ctyToNative(v cty.Value) (interface{}, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, acc := bf.Int64()
			if acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := make([]interface{}, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, native)
		}
		return list, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]interface{}, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil
	}

	return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}
