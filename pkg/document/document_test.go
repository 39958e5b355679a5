package document_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cuepine/pkg/document"
	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/filesystem"
	"github.com/arthur-debert/cuepine/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The same document in every supported format
var sameDocument = map[document.Format]string{
	document.FormatJSON: `{
  "pre": ["echo pre"],
  "post": ["echo post"],
  "dependencies": ["git"],
  "opt_dependencies": ["fzf"],
  "installation": {
    "bin": {
      "tools": {
        "dir": "$HOME/bin",
        "files": ["foo.sh", "bar.py"],
        "renamed_files": [{"src": "baz.sh", "dst": "bz"}],
        "strip_ext": true,
        "condition": "test -d /tmp"
      }
    }
  }
}`,
	document.FormatYAML: `
pre: [echo pre]
post: [echo post]
dependencies: [git]
opt_dependencies: [fzf]
installation:
  bin:
    tools:
      dir: $HOME/bin
      files: [foo.sh, bar.py]
      renamed_files:
        - src: baz.sh
          dst: bz
      strip_ext: true
      condition: test -d /tmp
`,
	document.FormatTOML: `
pre = ["echo pre"]
post = ["echo post"]
dependencies = ["git"]
opt_dependencies = ["fzf"]

[installation.bin.tools]
dir = "$HOME/bin"
files = ["foo.sh", "bar.py"]
renamed_files = [{ src = "baz.sh", dst = "bz" }]
strip_ext = true
condition = "test -d /tmp"
`,
	document.FormatHCL: `
pre              = ["echo pre"]
post             = ["echo post"]
dependencies     = ["git"]
opt_dependencies = ["fzf"]

installation = {
  bin = {
    tools = {
      dir           = "$HOME/bin"
      files         = ["foo.sh", "bar.py"]
      renamed_files = [{ src = "baz.sh", dst = "bz" }]
      strip_ext     = true
      condition     = "test -d /tmp"
    }
  }
}
`,
	document.FormatLiteral: `
# install.py
{
    "pre": ["echo pre"],
    "post": ["echo post"],
    "dependencies": ["git"],
    "opt_dependencies": ("fzf",),
    "installation": {
        "bin": {
            "tools": {
                "dir": "$HOME/bin",
                "files": ["foo.sh", "bar.py"],
                "renamed_files": [{"src": "baz.sh", "dst": "bz"}],
                "strip_ext": True,
                "condition": "test -d /tmp",
            },
        },
    },
}
`,
}

func TestParse_AllFormatsNormalizeIdentically(t *testing.T) {
	source := filepath.Join(string(filepath.Separator), "proj", "install")

	for format, content := range sameDocument {
		t.Run(format.String(), func(t *testing.T) {
			doc, warnings, err := document.Parse(format, []byte(content), source+"."+format.String())
			require.NoError(t, err)
			assert.Empty(t, warnings)

			assert.Equal(t, []string{"echo pre"}, doc.Pre)
			assert.Equal(t, []string{"echo post"}, doc.Post)
			assert.Equal(t, []string{"git"}, doc.Dependencies)
			assert.Equal(t, []string{"fzf"}, doc.OptDependencies)
			assert.Equal(t, filepath.Dir(source), doc.SourceDir)

			entry := doc.Installation["bin"]["tools"]
			assert.Equal(t, "$HOME/bin", entry.Dir, "$HOME is not substituted at load time")
			assert.Equal(t, []string{"foo.sh", "bar.py"}, entry.Files)
			assert.Equal(t, []types.RenamedFile{{Src: "baz.sh", Dst: "bz"}}, entry.RenamedFiles)
			assert.True(t, entry.StripExt)
			require.NotNil(t, entry.Condition)
			assert.Equal(t, "test -d /tmp", *entry.Condition)
		})
	}
}

func TestParse_AbsentKeysAreEmpty(t *testing.T) {
	doc, warnings, err := document.Parse(document.FormatYAML, []byte("installation:\n  a:\n    b:\n      dir: /opt\n"), "install.yaml")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, doc.Pre)
	assert.Empty(t, doc.Dependencies)

	entry := doc.Installation["a"]["b"]
	assert.Empty(t, entry.Files)
	assert.False(t, entry.StripExt)
	assert.False(t, entry.HasCondition())
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, format := range []document.Format{document.FormatJSON, document.FormatYAML, document.FormatTOML} {
		content := ""
		if format == document.FormatJSON {
			content = "{}"
		}
		doc, _, err := document.Parse(format, []byte(content), "install")
		require.NoError(t, err, format.String())
		assert.Zero(t, doc.EntryCount())
	}
}

func TestParse_UnknownKeysWarn(t *testing.T) {
	content := `{
  "pre": [],
  "version": 2,
  "installation": {"bin": {"t": {"dir": "/opt", "mode": "0755"}}}
}`
	doc, warnings, err := document.Parse(document.FormatJSON, []byte(content), "install.json")
	require.NoError(t, err)
	require.NotNil(t, doc)

	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, types.WarnUnknownKey, w.Kind)
		assert.Equal(t, "install.json", w.Document)
	}
	assert.Contains(t, warnings[0].Message, `"version"`)
	assert.Contains(t, warnings[1].Message, "mode")
}

func TestParse_DestAlias(t *testing.T) {
	content := `
installation:
  bin:
    t:
      dir: /opt
      renamed_files:
        - {src: a.sh, dest: a}
        - {src: b.sh, dst: b}
`
	doc, warnings, err := document.Parse(document.FormatYAML, []byte(content), "install.yaml")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []types.RenamedFile{{Src: "a.sh", Dst: "a"}, {Src: "b.sh", Dst: "b"}},
		doc.Installation["bin"]["t"].RenamedFiles)
}

func TestParse_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  document.Format
		content string
	}{
		{"installation_is_list", document.FormatJSON, `{"installation": ["a"]}`},
		{"category_is_list", document.FormatJSON, `{"installation": {"bin": ["a"]}}`},
		{"files_contains_number", document.FormatJSON, `{"installation": {"bin": {"t": {"dir": "/x", "files": ["a", 3]}}}}`},
		{"files_is_string", document.FormatYAML, "installation:\n  bin:\n    t:\n      dir: /x\n      files: a.sh\n"},
		{"pre_is_string", document.FormatYAML, "pre: echo hi\n"},
		{"dependencies_with_number", document.FormatTOML, "dependencies = [1]\n"},
		{"entry_without_dir", document.FormatYAML, "installation:\n  bin:\n    t:\n      files: [a]\n"},
		{"renamed_without_dst", document.FormatJSON, `{"installation": {"b": {"t": {"dir": "/x", "renamed_files": [{"src": "a"}]}}}}`},
		{"strip_ext_is_string", document.FormatJSON, `{"installation": {"b": {"t": {"dir": "/x", "strip_ext": "yes"}}}}`},
		{"root_is_list", document.FormatJSON, `["pre"]`},
		{"malformed_json", document.FormatJSON, `{"pre": [`},
		{"malformed_yaml", document.FormatYAML, "pre: [a\n"},
		{"malformed_toml", document.FormatTOML, "pre = \n"},
		{"malformed_hcl", document.FormatHCL, "pre = [\n"},
		{"hcl_variable_reference", document.FormatHCL, "pre = [var.cmd]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _, err := document.Parse(tt.format, []byte(tt.content), "install")
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
		})
	}
}

func TestParse_LiteralNeverEvaluates(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"function_call", `{"pre": [__import__("os").system("touch /tmp/x")]}`},
		{"binary_operator", `{"pre": ["a" + "b"]}`},
		{"comprehension", `{"pre": [x for x in ["a"]]}`},
		{"free_name", `{"pre": [HOME]}`},
		{"lambda", `{"pre": lambda: 1}`},
		{"non_string_key", `{1: ["a"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := document.Parse(document.FormatLiteral, []byte(tt.content), "install.py")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
		})
	}
}

func TestParse_LiteralImplicitConcatenation(t *testing.T) {
	content := `{'installation': {'b': {'t': {'dir': '$HOME/bin',
                                  'condition': ('test -d /usr/local/share/'
                                                "completions" # wrapped
                                                r' && true'),
                                  'files': ['a' 'b.sh', 'c.sh']}}},
 'pre': ['echo "it\'s"' ' done']}`
	doc, _, err := document.Parse(document.FormatLiteral, []byte(content), "install.py")
	require.NoError(t, err)

	entry := doc.Installation["b"]["t"]
	require.True(t, entry.HasCondition())
	assert.Equal(t, "test -d /usr/local/share/completions && true", *entry.Condition)
	assert.Equal(t, []string{"ab.sh", "c.sh"}, entry.Files)
	assert.Equal(t, []string{`echo "it's" done`}, doc.Pre)
}

func TestParse_LiteralScalars(t *testing.T) {
	content := `{"installation": {"b": {"t": {"dir": "/x", "strip_ext": False, "condition": None}}}}`
	doc, _, err := document.Parse(document.FormatLiteral, []byte(content), "install.py")
	require.NoError(t, err)

	entry := doc.Installation["b"]["t"]
	assert.False(t, entry.StripExt)
	assert.False(t, entry.HasCondition())
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   document.Format
		wantOK bool
	}{
		{"install.json", document.FormatJSON, true},
		{"/a/b/install.yaml", document.FormatYAML, true},
		{"install.yml", document.FormatYAML, true},
		{"install.TOML", document.FormatTOML, true},
		{"install.hcl", document.FormatHCL, true},
		{"install.py", document.FormatLiteral, true},
		{"install.ini", "", false},
		{"install", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := document.FormatFromPath(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat_Aliases(t *testing.T) {
	for name, want := range map[string]document.Format{
		"json": document.FormatJSON, "yml": document.FormatYAML, ".toml": document.FormatTOML,
		"python": document.FormatLiteral, "py": document.FormatLiteral,
	} {
		got, ok := document.ParseFormat(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "install.toml")
	fs := filesystem.NewOS()

	t.Run("sets_source_dir", func(t *testing.T) {
		require.NoError(t, writeFile(path, "[installation.bin.t]\ndir = \"bin\"\nfiles = [\"a.sh\"]\n"))

		doc, _, err := document.Load(fs, path)
		require.NoError(t, err)
		assert.Equal(t, path, doc.Path)
		assert.Equal(t, dir, doc.SourceDir)
		assert.Equal(t, filepath.Join(dir, "a.sh"), doc.ResolveSource("a.sh"))
	})

	t.Run("missing_file", func(t *testing.T) {
		_, _, err := document.Load(fs, filepath.Join(dir, "nope", "install.json"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		_, _, err := document.Load(fs, filepath.Join(dir, "install.ini"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}
