package document

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/types"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize builds a ConfigDocument from a decoded generic tree.
//
// Unknown top-level keys are dropped with a warning. Shape violations
// (a list where a mapping is expected, a non-string inside files, an entry
// with no dir) fail with ErrConfigParse.
func Normalize(tree map[string]interface{}, source string) (*types.ConfigDocument, []types.Warning, error) {
	var warnings []types.Warning

	known := make(map[string]interface{}, len(tree))
	for _, key := range sortedKeys(tree) {
		if !isTopLevelKey(key) {
			warnings = append(warnings, types.Warning{
				Kind:     types.WarnUnknownKey,
				Document: source,
				Message:  fmt.Sprintf("unrecognized top-level key %q ignored", key),
			})
			continue
		}
		known[key] = tree[key]
	}

	if inst, ok := known[types.KeyInstallation]; ok && inst != nil {
		aliased, err := aliasRenamedFiles(inst)
		if err != nil {
			return nil, warnings, errors.Wrapf(err, errors.ErrConfigParse, "invalid %s in %s", types.KeyInstallation, source)
		}
		known[types.KeyInstallation] = aliased
	}

	doc := &types.ConfigDocument{}
	var meta mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           doc,
		Metadata:         &meta,
		WeaklyTypedInput: false,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, warnings, errors.Wrap(err, errors.ErrInternal, "failed to create decoder")
	}
	if err := decoder.Decode(known); err != nil {
		return nil, warnings, errors.Wrapf(err, errors.ErrConfigParse, "invalid document %s", source)
	}

	unused := append([]string(nil), meta.Unused...)
	sort.Strings(unused)
	for _, key := range unused {
		warnings = append(warnings, types.Warning{
			Kind:     types.WarnUnknownKey,
			Document: source,
			Message:  fmt.Sprintf("unrecognized key %q ignored", key),
		})
	}

	if err := validate.Struct(doc); err != nil {
		return nil, warnings, errors.Wrapf(describeValidation(err), errors.ErrConfigParse, "invalid document %s", source)
	}

	return doc, warnings, nil
}

func isTopLevelKey(key string) bool {
	for _, k := range types.TopLevelKeys {
		if k == key {
			return true
		}
	}
	return false
}

// aliasRenamedFiles rewrites "dest" to "dst" inside renamed_files items.
// The input tree is left untouched.
func aliasRenamedFiles(inst interface{}) (interface{}, error) {
	categories, ok := inst.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a mapping of categories, got %s", kindOf(inst))
	}

	out := make(map[string]interface{}, len(categories))
	for category, rawEntries := range categories {
		entries, ok := rawEntries.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("category %q: expected a mapping of entries, got %s", category, kindOf(rawEntries))
		}
		copied := make(map[string]interface{}, len(entries))
		for name, rawEntry := range entries {
			copied[name] = aliasEntry(rawEntry)
		}
		out[category] = copied
	}
	return out, nil
}

func aliasEntry(rawEntry interface{}) interface{} {
	entry, ok := rawEntry.(map[string]interface{})
	if !ok {
		return rawEntry
	}
	renamed, ok := entry["renamed_files"].([]interface{})
	if !ok {
		return rawEntry
	}

	items := make([]interface{}, len(renamed))
	for i, rawItem := range renamed {
		item, ok := rawItem.(map[string]interface{})
		if !ok {
			items[i] = rawItem
			continue
		}
		if dest, has := item["dest"]; has {
			if _, hasDst := item["dst"]; !hasDst {
				fixed := make(map[string]interface{}, len(item))
				for k, v := range item {
					if k != "dest" {
						fixed[k] = v
					}
				}
				fixed["dst"] = dest
				item = fixed
			}
		}
		items[i] = item
	}

	copied := make(map[string]interface{}, len(entry))
	for k, v := range entry {
		copied[k] = v
	}
	copied["renamed_files"] = items
	return copied
}

// describeValidation turns validator output into a short readable error
func describeValidation(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fieldPath(fe.Namespace()), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// fieldPath strips the root struct name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
