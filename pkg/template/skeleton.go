package template

// Document mirrors the config schema with fields in canonical key order.
// Encoders that honour struct field order (json, yaml, toml) emit keys in
// that order.
type Document struct {
	Pre             []string                    `json:"pre,omitempty" yaml:"pre,omitempty" toml:"pre,omitempty"`
	Post            []string                    `json:"post,omitempty" yaml:"post,omitempty" toml:"post,omitempty"`
	Dependencies    []string                    `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	OptDependencies []string                    `json:"opt_dependencies,omitempty" yaml:"opt_dependencies,omitempty" toml:"opt_dependencies,omitempty"`
	Installation    map[string]map[string]Entry `json:"installation" yaml:"installation" toml:"installation"`
}

// Entry mirrors an install entry in canonical key order
type Entry struct {
	Dir          string    `json:"dir" yaml:"dir" toml:"dir"`
	Files        []string  `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
	RenamedFiles []Renamed `json:"renamed_files,omitempty" yaml:"renamed_files,omitempty" toml:"renamed_files,omitempty,inline"`
	StripExt     bool      `json:"strip_ext" yaml:"strip_ext" toml:"strip_ext"`
	Condition    *string   `json:"condition,omitempty" yaml:"condition,omitempty" toml:"condition,omitempty"`
}

// Renamed mirrors a renamed_files item
type Renamed struct {
	Src string `json:"src" yaml:"src" toml:"src"`
	Dst string `json:"dst" yaml:"dst" toml:"dst"`
}

func ptr(s string) *string { return &s }

// Skeleton returns a document with every recognized key and empty values
func Skeleton() Document {
	return Document{
		Pre:             []string{""},
		Post:            []string{""},
		Dependencies:    []string{""},
		OptDependencies: []string{""},
		Installation: map[string]map[string]Entry{
			"category": {
				"entry": {
					Dir:          "",
					Files:        []string{""},
					RenamedFiles: []Renamed{{Src: "", Dst: ""}},
					StripExt:     false,
					Condition:    ptr(""),
				},
			},
		},
	}
}

// Example returns a realistic document used by the explanation text
func Example() Document {
	return Document{
		Pre:          []string{"mkdir -p build"},
		Post:         []string{"echo 'installation done'"},
		Dependencies: []string{"ssh", "ed", "vim"},
		Installation: map[string]map[string]Entry{
			"config": {
				"app": {
					Dir:   "$HOME/.config/mydir",
					Files: []string{"file_1.py", "file_2.py"},
				},
			},
			"scripts": {
				"bin": {
					Dir:      "$HOME/.local/bin",
					Files:    []string{"script.sh"},
					StripExt: true,
				},
				"mac": {
					Dir:       "$HOME/.local/bin",
					Files:     []string{"pbtools.sh"},
					StripExt:  true,
					Condition: ptr("test \"$(uname)\" = Darwin"),
				},
			},
			"setup": {
				"bash": {
					Dir: "$HOME/.config/bash/setup",
					RenamedFiles: []Renamed{
						{Src: "my_aliases.sh", Dst: "999_aliases.sh"},
						{Src: "autocompletion.bash", Dst: "999_autocomp.bash"},
					},
				},
			},
		},
	}
}
