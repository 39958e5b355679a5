package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationString(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want string
	}{
		{
			name: "create dir",
			op:   Operation{Type: OperationCreateDir, Target: "/home/u/bin"},
			want: "mkdir /home/u/bin",
		},
		{
			name: "create symlink",
			op:   Operation{Type: OperationCreateSymlink, Source: "/repo/scripts/foo.sh", Target: "/home/u/bin/foo"},
			want: "/repo/scripts/foo.sh => /home/u/bin/foo",
		},
		{
			name: "remove symlink",
			op:   Operation{Type: OperationRemoveSymlink, Target: "/home/u/bin/foo"},
			want: "rm /home/u/bin/foo",
		},
		{
			name: "unknown type",
			op:   Operation{Type: "chmod", Target: "/x"},
			want: "chmod /x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.String())
		})
	}
}

func TestWarningString(t *testing.T) {
	tests := []struct {
		name string
		w    Warning
		want string
	}{
		{
			name: "document and entry",
			w:    Warning{Kind: WarnPlacement, Document: "install.json", Entry: "scripts.bin", Message: "exists"},
			want: "install.json [scripts.bin]: exists",
		},
		{
			name: "document only",
			w:    Warning{Kind: WarnParse, Document: "install.yaml", Message: "bad yaml"},
			want: "install.yaml: bad yaml",
		},
		{
			name: "message only",
			w:    Warning{Kind: WarnDiscovery, Message: "unreadable directory"},
			want: "unreadable directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.w.String())
		})
	}
}

func TestConfigDocumentEntries(t *testing.T) {
	doc := &ConfigDocument{
		Installation: map[string]map[string]InstallEntry{
			"scripts": {
				"mac": {Dir: "$HOME/bin"},
				"bin": {Dir: "$HOME/bin"},
			},
			"config": {
				"app": {Dir: "$HOME/.config"},
			},
		},
	}

	refs := doc.Entries()
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.String())
	}

	assert.Equal(t, []string{"config.app", "scripts.bin", "scripts.mac"}, names)
	assert.Equal(t, 3, doc.EntryCount())
	assert.Empty(t, (&ConfigDocument{}).Entries())
}

func TestResolveSource(t *testing.T) {
	doc := &ConfigDocument{SourceDir: "/repo/tools"}

	assert.Equal(t, "/repo/tools/foo.sh", doc.ResolveSource("foo.sh"))
	assert.Equal(t, "/repo/foo.sh", doc.ResolveSource("../foo.sh"))
	assert.Equal(t, "/etc/hosts", doc.ResolveSource("/etc//hosts"))
}

func TestInstallEntryHasCondition(t *testing.T) {
	cond := "true"
	assert.True(t, InstallEntry{Condition: &cond}.HasCondition())
	assert.False(t, InstallEntry{}.HasCondition())
}

func TestMode(t *testing.T) {
	tests := []struct {
		mode    Mode
		mutates bool
		hooks   bool
	}{
		{ModeInstall, true, true},
		{ModeUninstall, true, false},
		{ModeDryRun, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.mutates, tt.mode.Mutates())
			assert.Equal(t, tt.hooks, tt.mode.RunsHooks())
		})
	}
}

func TestDestState(t *testing.T) {
	assert.False(t, DestState{Kind: DestAbsent}.Exists())
	assert.True(t, DestState{Kind: DestSymlink, LinkTarget: "/gone"}.Exists())
	assert.True(t, DestState{Kind: DestOther}.Exists())
	assert.Equal(t, "symlink", DestSymlink.String())
	assert.Equal(t, "absent", DestAbsent.String())
	assert.Equal(t, "other", DestOther.String())
}
