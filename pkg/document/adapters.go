package document

import (
	"encoding/json"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// adapter decodes raw bytes of one format into a generic tree
type adapter func(data []byte, filename string) (map[string]interface{}, error)

var adapters = map[Format]adapter{
	FormatJSON:    decodeJSON,
	FormatYAML:    decodeYAML,
	FormatTOML:    decodeTOML,
	FormatHCL:     decodeHCL,
	FormatLiteral: decodeLiteral,
}

// Decode parses data of the given format into a generic key/value tree
func Decode(format Format, data []byte, filename string) (map[string]interface{}, error) {
	decode, ok := adapters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return decode(data, filename)
}

func decodeJSON(data []byte, _ string) (map[string]interface{}, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return asRoot(raw)
}

func decodeYAML(data []byte, _ string) (map[string]interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return asRoot(raw)
}

func decodeTOML(data []byte, _ string) (map[string]interface{}, error) {
	raw := map[string]interface{}{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return asRoot(raw)
}

// asRoot checks that a decoded document is a mapping and normalizes keys.
// An empty file decodes to nil and is treated as an empty document.
func asRoot(raw interface{}) (map[string]interface{}, error) {
	if raw == nil {
		return map[string]interface{}{}, nil
	}
	tree, ok := stringKeys(raw).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("document root must be a mapping, got %s", kindOf(raw))
	}
	return tree, nil
}

// stringKeys converts map[interface{}]interface{} nodes to string-keyed maps
func stringKeys(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = stringKeys(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = stringKeys(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = stringKeys(item)
		}
		return out
	}
	return v
}

func kindOf(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}, map[interface{}]interface{}:
		return "mapping"
	case []interface{}:
		return "list"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
