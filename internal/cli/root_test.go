package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in an isolated home and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CUEPINE_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("NO_COLOR", "1")

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_InstallsTree(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Write(map[string]string{
		"install.yaml": `
dependencies: [sh]
pre: ["echo pre-ran > pre.txt"]
installation:
  bin:
    tools:
      dir: $HOME/bin
      files: [foo.sh]
      strip_ext: true
`,
		"foo.sh": "#!/bin/sh\n",
		"sub/install.json": `{"dependencies": ["definitely-not-a-command-xyz"],
			"installation": {"bin": {"bar": {"dir": "$HOME/bin", "files": ["bar.sh"]}}}}`,
		"sub/bar.sh": "x",
	})

	out, err := execute(t, "--color", "never", env.Root)
	require.NoError(t, err)

	testutil.AssertSymlink(t, env.HomePath("bin", "foo"), env.Path("foo.sh"))
	testutil.AssertNoPath(t, env.HomePath("bin", "bar.sh"))
	testutil.AssertFileContent(t, env.Path("pre.txt"), "pre-ran\n")

	assert.Contains(t, out, "Pre-scripts")
	assert.Contains(t, out, "Installation")
	assert.Contains(t, out, "skipped (missing dependencies)")
	assert.Contains(t, out, "Done. 1 installed")
}

func TestRoot_DryRunThenUninstall(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Write(map[string]string{
		"install.json": `{"installation": {"bin": {"tools": {"dir": "$HOME/bin", "files": ["foo.sh"]}}}}`,
		"foo.sh":       "x",
	})

	out, err := execute(t, "-d", env.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run.")
	testutil.AssertNoPath(t, env.HomePath("bin"))

	_, err = execute(t, env.Root)
	require.NoError(t, err)
	testutil.AssertSymlink(t, env.HomePath("bin", "foo.sh"), env.Path("foo.sh"))

	out, err = execute(t, "-u", env.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "Uninstallation")
	testutil.AssertNoPath(t, env.HomePath("bin", "foo.sh"))
}

func TestRoot_ExplicitFileWithNoSublevel(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Write(map[string]string{
		"setup.yaml":     "installation:\n  bin:\n    a:\n      dir: $HOME/bin\n      files: [a.sh]\n",
		"a.sh":           "x",
		"sub/setup.yaml": "installation:\n  bin:\n    b:\n      dir: $HOME/bin\n      files: [b.sh]\n",
		"sub/b.sh":       "x",
	})

	_, err := execute(t, "--no-sublevel", "--config-name", "setup.yaml", env.Path("setup.yaml"))
	require.NoError(t, err)

	testutil.AssertSymlink(t, env.HomePath("bin", "a.sh"), env.Path("a.sh"))
	testutil.AssertNoPath(t, env.HomePath("bin", "b.sh"))
}

func TestRoot_MissingTopLevelDependencyAborts(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Write(map[string]string{
		"install.json": `{"dependencies": ["definitely-not-a-command-xyz"],
			"installation": {"bin": {"tools": {"dir": "$HOME/bin", "files": ["foo.sh"]}}}}`,
		"foo.sh": "x",
	})

	out, err := execute(t, env.Root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDependency))
	assert.Equal(t, ExitAbort, ExitCode(err))
	assert.Contains(t, out, "Aborted:")
	testutil.AssertNoPath(t, env.HomePath("bin"))

	out, err = execute(t, "-c", env.Root)
	require.Error(t, err)
	assert.Equal(t, ExitAbort, ExitCode(err))
	assert.Contains(t, out, "definitely-not-a-command-xyz (missing)")
}

func TestRoot_Template(t *testing.T) {
	testutil.SetupHome(t, t.TempDir())

	out, err := execute(t, "-t")
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc), "default template format is json")
	assert.Contains(t, doc, "installation")

	out, err = execute(t, "--template=yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "installation:")

	out, err = execute(t, "-t", "--config-name", "install.toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[installation")

	_, err = execute(t, "--template=ini")
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestRoot_ExplainConfig(t *testing.T) {
	testutil.SetupHome(t, t.TempDir())

	out, err := execute(t, "--explain-config=hcl")
	require.NoError(t, err)
	assert.Contains(t, out, "renamed_files")
	assert.Contains(t, out, "```hcl")
}

func TestRoot_PrintSettings(t *testing.T) {
	testutil.SetupHome(t, t.TempDir())

	out, err := execute(t, "--print-settings", "--strict-hooks=false")
	require.NoError(t, err)
	assert.Contains(t, out, "[hooks]")
	assert.Contains(t, out, "strict = false")
}

func TestRoot_FlagErrors(t *testing.T) {
	testutil.SetupHome(t, t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"uninstall_and_dry_run", []string{"-u", "-d"}},
		{"unknown_flag", []string{"--nope"}},
		{"too_many_args", []string{"a", "b"}},
		{"bad_color", []string{"--color", "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitUsage, ExitCode(err))
		})
	}
}

func TestRoot_MissingTarget(t *testing.T) {
	testutil.SetupHome(t, t.TempDir())

	_, err := execute(t, filepath.Join(t.TempDir(), "nowhere"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestVersionAndCompletion(t *testing.T) {
	testutil.SetupHome(t, t.TempDir())

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cuepine version")

	out, err = execute(t, "-V")
	require.NoError(t, err)
	assert.Contains(t, out, "cuepine version")

	out, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "cuepine")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{errors.New(errors.ErrDependency, "missing"), ExitAbort},
		{reported(errors.New(errors.ErrShellCommand, "failed")), ExitAbort},
		{errors.New(errors.ErrConfigParse, "bad"), ExitAbort},
		{errors.New(errors.ErrInvalidInput, "bad flag"), ExitUsage},
		{fmt.Errorf("unknown flag: --nope"), ExitUsage},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestPrintError_SkipsReportedErrors(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, reported(errors.New(errors.ErrDependency, "missing")))
	assert.Empty(t, buf.String())

	printError(&buf, errors.New(errors.ErrNotFound, "no root"))
	assert.Contains(t, buf.String(), "no root")
}
