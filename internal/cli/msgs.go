package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install a project tree as symlinks, driven by install documents"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagUninstall     = "Remove the symlinks an install would create"
	MsgFlagDryRun        = "Show what would be done without changing anything or running hooks"
	MsgFlagTemplate      = "Print an empty install document (json, yaml, toml, hcl, py)"
	MsgFlagExplain       = "Explain the install document format, with an example"
	MsgFlagConfigName    = "Only look for config files with this exact name"
	MsgFlagNoSublevel    = "Don't process config files found in subdirectories"
	MsgFlagCheckDeps     = "Only check dependencies of every document and exit"
	MsgFlagStrictHooks   = "Abort the run when a pre/post command fails"
	MsgFlagColor         = "Color output: auto, always or never"
	MsgFlagPrintSettings = "Print the effective tool settings and exit"
	MsgFlagVersion       = "Print the version and exit"

	// Version output
	MsgVersionFormat = "cuepine version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrUnknownFormat = "unknown format %q, expected one of: %s"
	MsgErrColor         = "invalid --color %q, expected auto, always or never"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
