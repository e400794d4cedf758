// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"docport-cli/internal/config"
	"docport-cli/internal/issue"
	"docport-cli/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `docport config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage docport configuration",
		Long: `Manage docport configuration.

Configuration is stored in:
  - Linux: ~/.config/docport/config.cue
  - macOS: ~/Library/Application Support/docport/config.cue
  - Windows: %APPDATA%\docport\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, rootFlags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.Config.Load(cmd.Context(), loadOptionsFor(rootFlags))
			if err != nil {
				return err
			}

			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

// loadOptionsFor honors the root --config flag for read-only subcommands.
func loadOptionsFor(rootFlags *rootFlagValues) config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(rootFlags.configPath),
	}
}

func showConfig(ctx context.Context, app *App, rootFlags *rootFlagValues) error {
	cfg, resolvedPath, err := app.Config.Load(ctx, loadOptionsFor(rootFlags))
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(app.stderr, rendered)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	if resolvedPath != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), resolvedPath)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("tool"))
	if cfg.Tool.Path == "" {
		fmt.Fprintf(app.stdout, "  path: %s\n", SubtitleStyle.Render("(resolved automatically)"))
	} else {
		fmt.Fprintf(app.stdout, "  path: %s\n", valueStyle.Render(cfg.Tool.Path.String()))
	}
	fmt.Fprintf(app.stdout, "  pdf_engine: %s\n", valueStyle.Render(cfg.Tool.PDFEngine.String()))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("export"))
	fmt.Fprintf(app.stdout, "  format: %s\n", valueStyle.Render(cfg.Export.Format.String()))
	if cfg.Export.OutputDir == "" {
		fmt.Fprintf(app.stdout, "  output_dir: %s\n", SubtitleStyle.Render("(alongside the document)"))
	} else {
		fmt.Fprintf(app.stdout, "  output_dir: %s\n", valueStyle.Render(cfg.Export.OutputDir.String()))
	}
	if cfg.Export.ExtraArgs == "" {
		fmt.Fprintf(app.stdout, "  extra_args: %s\n", SubtitleStyle.Render("(none)"))
	} else {
		fmt.Fprintf(app.stdout, "  extra_args: %s\n", valueStyle.Render(cfg.Export.ExtraArgs))
	}
	fmt.Fprintf(app.stdout, "  open_after: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Export.OpenAfter)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s/%s.%s\n",
		SuccessStyle.Render("✓"), cfgDir, config.ConfigFileName, config.ConfigFileExt)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s/%s.%s\n", cfgDir, config.ConfigFileName, config.ConfigFileExt)
	return nil
}

func setConfigValue(ctx context.Context, app *App, key, value string) error {
	// Load without an explicit path: Save always writes the standard
	// location, and mixing an ad-hoc source file into it would silently
	// copy that file's values over.
	cfg, _, err := app.Config.Load(ctx, config.LoadOptions{})
	if err != nil {
		return err
	}

	if err := applyConfigSet(cfg, key, value); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// applyConfigSet validates and applies one key/value pair to the config.
// Typed keys validate through their IsValid methods so `config set` rejects
// exactly what loading would reject.
func applyConfigSet(cfg *config.Config, key, value string) error {
	switch key {
	case "tool.path":
		p := config.ToolPath(value)
		if ok, errs := p.IsValid(); !ok {
			return errs[0]
		}
		cfg.Tool.Path = p

	case "tool.pdf_engine":
		e := config.PDFEngine(value)
		if ok, errs := e.IsValid(); !ok {
			return errs[0]
		}
		cfg.Tool.PDFEngine = e

	case "export.format":
		f := config.ExportFormat(value)
		if ok, errs := f.IsValid(); !ok {
			return errs[0]
		}
		cfg.Export.Format = f

	case "export.output_dir":
		d := config.OutputDirPath(value)
		if ok, errs := d.IsValid(); !ok {
			return errs[0]
		}
		cfg.Export.OutputDir = d

	case "export.extra_args":
		cfg.Export.ExtraArgs = value

	case "export.open_after":
		cfg.Export.OpenAfter = value == "true" || value == "1"

	case "ui.color_scheme":
		cs := config.ColorScheme(value)
		if ok, errs := cs.IsValid(); !ok {
			return errs[0]
		}
		cfg.UI.ColorScheme = cs

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: tool.path, tool.pdf_engine, export.format, export.output_dir, export.extra_args, export.open_after, ui.color_scheme, ui.verbose", key)
	}

	return nil
}
