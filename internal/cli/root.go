package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/cuepine/internal/version"
	"github.com/arthur-debert/cuepine/pkg/config"
	"github.com/arthur-debert/cuepine/pkg/document"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// formatFromSettings is the optional value of --template and --explain-config:
// the format is taken from the first configured config file name.
const formatFromSettings = "auto"

type rootOptions struct {
	verbosity     int
	uninstall     bool
	dryRun        bool
	template      string
	explain       string
	configName    string
	noSublevel    bool
	checkDeps     bool
	strictHooks   bool
	color         string
	printSettings bool
}

func (o *rootOptions) mode() types.Mode {
	switch {
	case o.uninstall:
		return types.ModeUninstall
	case o.dryRun:
		return types.ModeDryRun
	}
	return types.ModeInstall
}

// overrides turns the flags the user set into dotted settings keys
func (o *rootOptions) overrides(flags *pflag.FlagSet) map[string]interface{} {
	m := map[string]interface{}{}
	if flags.Changed("config-name") {
		m["discovery.config_names"] = []string{o.configName}
	}
	if o.noSublevel {
		m["discovery.recursive"] = false
	}
	if flags.Changed("strict-hooks") {
		m["hooks.strict"] = o.strictHooks
	}
	if flags.Changed("color") {
		m["output.color"] = o.color
	}
	return m
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "cuepine [directory|config-file]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOptions(logging.Options{
				Verbosity: opts.verbosity,
				NoColor:   opts.color == config.ColorNever,
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.Flags()
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVarP(&opts.uninstall, "uninstall", "u", false, MsgFlagUninstall)
	flags.BoolVarP(&opts.dryRun, "dry-run", "d", false, MsgFlagDryRun)
	flags.StringVarP(&opts.template, "template", "t", "", MsgFlagTemplate)
	flags.Lookup("template").NoOptDefVal = formatFromSettings
	flags.StringVar(&opts.explain, "explain-config", "", MsgFlagExplain)
	flags.Lookup("explain-config").NoOptDefVal = formatFromSettings
	flags.StringVar(&opts.configName, "config-name", "", MsgFlagConfigName)
	flags.BoolVar(&opts.noSublevel, "no-sublevel", false, MsgFlagNoSublevel)
	flags.BoolVarP(&opts.checkDeps, "check-dependencies", "c", false, MsgFlagCheckDeps)
	flags.BoolVar(&opts.strictHooks, "strict-hooks", true, MsgFlagStrictHooks)
	flags.StringVar(&opts.color, "color", config.ColorAuto, MsgFlagColor)
	flags.BoolVar(&opts.printSettings, "print-settings", false, MsgFlagPrintSettings)
	flags.BoolP("version", "V", false, MsgFlagVersion)

	rootCmd.MarkFlagsMutuallyExclusive("uninstall", "dry-run")
	rootCmd.MarkFlagsMutuallyExclusive("uninstall", "check-dependencies")
	rootCmd.MarkFlagsMutuallyExclusive("template", "explain-config")

	_ = rootCmd.RegisterFlagCompletionFunc("template", completeFormats)
	_ = rootCmd.RegisterFlagCompletionFunc("explain-config", completeFormats)
	_ = rootCmd.RegisterFlagCompletionFunc("color", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.ColorAuto, config.ColorAlways, config.ColorNever}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetVersionTemplate(fmt.Sprintf(MsgVersionFormat, "{{.Version}}"))
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(document.Formats))
	for _, f := range document.Formats {
		names = append(names, f.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func formatNames() string {
	names := make([]string, 0, len(document.Formats))
	for _, f := range document.Formats {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}
