package document

import (
	"path/filepath"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// Load reads and normalizes the config file at path. The returned
// document's SourceDir is the file's absolute directory.
func Load(fs types.FS, path string) (*types.ConfigDocument, []types.Warning, error) {
	logger := logging.GetLogger("document.loader")

	format, ok := FormatFromPath(path)
	if !ok {
		return nil, nil, errors.Newf(errors.ErrConfigParse, "unsupported config file %s", path).
			WithDetail("path", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", path)
	}

	data, err := fs.ReadFile(abs)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", abs).
			WithDetail("path", abs)
	}

	logger.Trace().Str("path", abs).Str("format", format.String()).Msg("Loading config document")

	doc, warnings, err := Parse(format, data, abs)
	if err != nil {
		return nil, warnings, err
	}
	doc.Path = abs
	doc.SourceDir = filepath.Dir(abs)

	logger.Debug().
		Str("path", abs).
		Int("entries", doc.EntryCount()).
		Int("warnings", len(warnings)).
		Msg("Loaded config document")
	return doc, warnings, nil
}

// Parse decodes data in the given format and normalizes it. source is used
// for messages and to set SourceDir when it is a path.
func Parse(format Format, data []byte, source string) (*types.ConfigDocument, []types.Warning, error) {
	tree, err := Decode(format, data, source)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s as %s", source, format).
			WithDetail("path", source)
	}

	doc, warnings, err := Normalize(tree, source)
	if err != nil {
		return nil, warnings, err
	}
	if filepath.IsAbs(source) {
		doc.Path = source
		doc.SourceDir = filepath.Dir(source)
	}
	return doc, warnings, nil
}
