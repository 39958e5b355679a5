package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/cuepine/pkg/config"
	"github.com/arthur-debert/cuepine/pkg/discovery"
	"github.com/arthur-debert/cuepine/pkg/document"
	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/filesystem"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/orchestrator"
	"github.com/arthur-debert/cuepine/pkg/output"
	"github.com/arthur-debert/cuepine/pkg/paths"
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/style"
	"github.com/arthur-debert/cuepine/pkg/template"
	"github.com/spf13/cobra"
)

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	logger := logging.GetLogger("cli")
	out := cmd.OutOrStdout()

	switch opts.color {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return errors.Newf(errors.ErrInvalidInput, MsgErrColor, opts.color)
	}

	cfg, err := config.Load(opts.overrides(cmd.Flags()))
	if err != nil {
		return err
	}
	logger.Debug().Str("settings", cfg.String()).Msg("Settings loaded")

	switch {
	case opts.printSettings:
		s, err := cfg.TOML()
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, s)
		return err
	case cmd.Flags().Changed("template"):
		return printTemplate(out, opts.template, cfg)
	case cmd.Flags().Changed("explain-config"):
		return printExplanation(out, opts.explain, cfg)
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	target, err := paths.ResolveTarget(arg)
	if err != nil {
		return err
	}
	home, err := paths.GetHomeDirectory()
	if err != nil {
		return err
	}

	reporter, err := output.NewReporter(out, target.Root, home, style.ColorMode(cfg.Output.Color))
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot create reporter")
	}

	runner := shell.NewExecRunner(cfg.Hooks.Shell)
	runner.Stdout = out
	runner.Stderr = cmd.ErrOrStderr()

	orch := orchestrator.New(orchestrator.Options{
		Root:   target.Root,
		File:   target.File,
		Mode:   opts.mode(),
		Home:   home,
		FS:     filesystem.NewOS(),
		Runner: runner,
		Discovery: discovery.Options{
			ExcludedDirs: cfg.Discovery.ExcludedDirs,
			ConfigNames:  cfg.Discovery.ConfigNames,
			Recursive:    cfg.Discovery.Recursive,
		},
		StrictHooks: cfg.Hooks.Strict,
		Observer:    reporter.Observe,
	})

	logger.Info().
		Str("root", target.Root).
		Str("file", target.File).
		Str("mode", string(opts.mode())).
		Bool("checkDependencies", opts.checkDeps).
		Msg("Starting")

	if opts.checkDeps {
		report, err := orch.CheckDependencies(cmd.Context())
		if report == nil {
			return err
		}
		if rErr := reporter.DependencyReport(report); rErr != nil {
			logger.Warn().Err(rErr).Msg("Failed to print dependency report")
		}
		return reported(err)
	}

	res, err := orch.Run(cmd.Context())
	if sErr := reporter.Summary(res, err); sErr != nil {
		logger.Warn().Err(sErr).Msg("Failed to print summary")
	}
	return reported(err)
}

// templateFormat resolves the optional format value of --template and
// --explain-config
func templateFormat(value string, cfg *config.Config) (document.Format, error) {
	if value == formatFromSettings {
		if f, ok := document.FormatFromPath(cfg.Discovery.ConfigNames[0]); ok {
			return f, nil
		}
		return document.FormatJSON, nil
	}
	f, ok := document.ParseFormat(value)
	if !ok {
		return "", errors.Newf(errors.ErrInvalidInput, MsgErrUnknownFormat, value, formatNames())
	}
	return f, nil
}

func printTemplate(w io.Writer, value string, cfg *config.Config) error {
	format, err := templateFormat(value, cfg)
	if err != nil {
		return err
	}
	s, err := template.Render(format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func printExplanation(w io.Writer, value string, cfg *config.Config) error {
	format, err := templateFormat(value, cfg)
	if err != nil {
		return err
	}
	md, err := template.Explain(format)
	if err != nil {
		return err
	}

	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isTerminal(f)
	}
	if tty && cfg.Output.Color != config.ColorNever {
		md = newMarkdownRenderer(true).Render(md)
	}
	_, err = fmt.Fprint(w, md)
	return err
}
