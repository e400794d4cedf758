// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"docport-cli/internal/config"
	"docport-cli/internal/convert"
	"docport-cli/internal/export"
	"docport-cli/internal/issue"
	"docport-cli/internal/resolver"
	"docport-cli/pkg/platform"

	"github.com/spf13/cobra"
)

// exportFlagValues holds the export command's flag values.
type exportFlagValues struct {
	to     string
	output string
	engine string
	args   string
	open   bool
	watch  bool
	clear  bool
}

// newExportCommand creates the `docport export` command.
func newExportCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &exportFlagValues{}

	exportCmd := &cobra.Command{
		Use:   "export <document>",
		Short: "Export a document to PDF, DOCX, HTML, EPUB, or ODT",
		Long: `Export a Markdown document to PDF, DOCX, HTML, EPUB, or ODT.

The export drives an external pandoc binary. The document content is staged
to a transient input file, the target format maps to pandoc arguments, and
the artifact lands next to the document unless export.output_dir or --output
says otherwise. When a metadata sidecar (<document>.docport.toml) sits next
to the document, its title, author, date, and variables are forwarded as
--metadata arguments.

Flags override configuration; configuration overrides built-in defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.watch {
				return runWatchMode(cmd, app, rootFlags, flags, args[0])
			}
			return runExport(cmd, app, rootFlags, flags, args[0])
		},
	}

	exportCmd.Flags().StringVarP(&flags.to, "to", "t", "", "export format: pdf, docx, html, epub, or odt (default: export.format)")
	exportCmd.Flags().StringVarP(&flags.output, "output", "o", "", "exact output file path (default: derived from the document name)")
	exportCmd.Flags().StringVar(&flags.engine, "engine", "", "PDF engine: auto, wkhtmltopdf, weasyprint, prince, xelatex, or lualatex")
	exportCmd.Flags().StringVar(&flags.args, "args", "", "extra converter arguments, overrides export.extra_args")
	exportCmd.Flags().BoolVar(&flags.open, "open", false, "open the produced file after a successful export")
	exportCmd.Flags().BoolVar(&flags.watch, "watch", false, "re-export whenever the document or its sidecar changes")
	exportCmd.Flags().BoolVar(&flags.clear, "clear", false, "clear the screen before each watch re-export")

	return exportCmd
}

// runExport runs one export end to end and renders the outcome.
func runExport(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *exportFlagValues, documentPath string) error {
	ctx := cmd.Context()

	cfg, _, err := loadConfigWithFallback(ctx, app, rootFlags)
	if err != nil {
		return failExport(cmd, app, newServiceError(err, issue.ConfigLoadFailedId,
			fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, rootFlags.verbose))), 1)
	}
	verbose := applyVerbosity(app, rootFlags, cfg)

	req, svcErr := buildExportRequest(cfg, flags, documentPath)
	if svcErr != nil {
		return failExport(cmd, app, svcErr, 1)
	}

	result, diags, err := app.Exports.Export(ctx, req)
	renderDiagnostics(app.stderr, diags)
	if err != nil {
		issueID, styled := classifyExportError(err, verbose)
		return failExport(cmd, app, newServiceError(err, issueID, styled), 1)
	}

	if !result.Success() {
		return failExport(cmd, app, classifyConverterFailure(result, verbose), failureExitCode(result))
	}

	fmt.Fprintln(app.stdout, renderExportSuccess(result))
	return nil
}

// failExport renders a classified failure and converts it into an ExitError.
// Usage and Cobra's own error echo are silenced because the failure has
// already been rendered in full.
func failExport(cmd *cobra.Command, app *App, svcErr *ServiceError, code convert.ExitCode) error {
	renderServiceError(app.stderr, svcErr)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: code, Err: svcErr}
}

// buildExportRequest maps flags and configuration onto one export request.
func buildExportRequest(cfg *config.Config, flags *exportFlagValues, documentPath string) (export.Request, *ServiceError) {
	format := convert.Format(cfg.Export.Format)
	if flags.to != "" {
		format = convert.Format(flags.to)
	}
	if ok, errs := format.IsValid(); !ok {
		return export.Request{}, newServiceError(errs[0], issue.InvalidFormatId,
			fmt.Sprintf("\n%s %v\n", ErrorStyle.Render("Error:"), errs[0]))
	}

	engine := convert.PDFEngine(cfg.Tool.PDFEngine)
	if flags.engine != "" {
		engine = convert.PDFEngine(flags.engine)
	}
	if ok, errs := engine.IsValid(); !ok {
		return export.Request{}, newServiceError(errs[0], 0,
			fmt.Sprintf("\n%s %v\n", ErrorStyle.Render("Error:"), errs[0]))
	}

	text, err := os.ReadFile(documentPath)
	if err != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("read document").
			WithResource(documentPath).
			WithSuggestion("Check that the path is correct and the file is readable").
			Wrap(err).
			BuildError()
		return export.Request{}, newServiceError(wrapped, 0,
			fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(wrapped, false)))
	}

	if flags.output != "" {
		if svcErr := preflightOutputPath(flags.output); svcErr != nil {
			return export.Request{}, svcErr
		}
	}

	extraArgs := cfg.Export.ExtraArgs
	if flags.args != "" {
		extraArgs = flags.args
	}

	// Watch mode re-exports on every save; opening a viewer per save is
	// never wanted, so open-after is suppressed even when the configuration
	// asks for it.
	openAfter := (flags.open || cfg.Export.OpenAfter) && !flags.watch

	return export.Request{
		DocumentPath: documentPath,
		DocumentText: string(text),
		Format:       format,
		OutputPath:   flags.output,
		Settings: export.Settings{
			ToolHint:  resolver.Hint(cfg.Tool.Path),
			Engine:    engine,
			ExtraArgs: extraArgs,
			OutputDir: cfg.Export.OutputDir.String(),
			OpenAfter: openAfter,
		},
		Facts: platform.Current(),
	}, nil
}

// preflightOutputPath rejects an explicit output path whose parent directory
// does not exist or is not a directory. The converter reports such failures
// as opaque engine errors, so the check runs before any resolution work.
func preflightOutputPath(outputPath string) *ServiceError {
	dir := filepath.Dir(outputPath)
	info, err := os.Stat(dir)
	if err != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("use output directory").
			WithResource(dir).
			WithSuggestion(fmt.Sprintf("Create it first: mkdir -p %s", dir)).
			Wrap(err).
			BuildError()
		return newServiceError(wrapped, issue.OutputDirUnavailableId,
			fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(wrapped, false)))
	}
	if !info.IsDir() {
		pathErr := fmt.Errorf("output location %s is not a directory", dir)
		return newServiceError(pathErr, issue.OutputDirUnavailableId,
			fmt.Sprintf("\n%s %v\n", ErrorStyle.Render("Error:"), pathErr))
	}
	return nil
}

// failureExitCode propagates the converter's own exit code when it carries
// one. Spawn-level failures have no meaningful code and map to 1.
func failureExitCode(result *convert.Result) convert.ExitCode {
	if result.ExitCode > 0 {
		return result.ExitCode
	}
	return 1
}

// renderExportSuccess formats the one-line success summary.
func renderExportSuccess(result *convert.Result) string {
	line := fmt.Sprintf("%s Exported %s", SuccessStyle.Render("✓"), CmdStyle.Render(result.OutputPath))
	if info, err := export.DescribeOutput(result.OutputPath); err == nil {
		line += SubtitleStyle.Render(fmt.Sprintf(" (%s, %s)", info.Format, humanSize(info.SizeBytes)))
	}
	return line
}

// humanSize renders a byte count with a binary unit suffix.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
