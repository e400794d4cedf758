// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"docport-cli/internal/config"
	"docport-cli/internal/convert"
	"docport-cli/internal/export"
	"docport-cli/internal/resolver"
	"docport-cli/pkg/platform"
	"docport-cli/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer - all Cobra command handlers receive an App
	// reference and delegate business logic through its service interfaces
	// (Config, Exports, Resolver).
	App struct {
		Config   ConfigProvider
		Exports  ExportService
		Resolver ToolResolver
		Logger   *log.Logger
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can
	// supply mock implementations to isolate specific service behavior.
	Dependencies struct {
		Config   ConfigProvider
		Exports  ExportService
		Resolver ToolResolver
		Logger   *log.Logger
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options and reports
	// the file it loaded from ("" when built-in defaults applied). This
	// abstraction enables testing with custom config sources or mock
	// implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// ExportService runs one document export and returns user-renderable
	// diagnostics. Implementations must not write directly to stdout/stderr;
	// diagnostics are returned as structured data for the CLI layer to render.
	ExportService interface {
		Export(ctx context.Context, req export.Request) (*convert.Result, []export.Diagnostic, error)
	}

	// ToolResolver locates the converter executable and enumerates the
	// directories the search covers. Satisfied by *resolver.Resolver.
	ToolResolver interface {
		Resolve(ctx context.Context, hint resolver.Hint, facts platform.Facts) (resolver.ResolvedExecutable, error)
		SearchDirs(facts platform.Facts) []resolver.SearchDir
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(deps.Stderr, log.Options{
			ReportTimestamp: false,
		})
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Resolver == nil {
		deps.Resolver = resolver.New(deps.Logger)
	}
	if deps.Exports == nil {
		deps.Exports = export.NewService(deps.Logger)
	}

	return &App{
		Config:   deps.Config,
		Exports:  deps.Exports,
		Resolver: deps.Resolver,
		Logger:   deps.Logger,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

// loadConfigWithFallback loads configuration via the provider.
//
// Failure handling depends on where the configuration came from:
//   - Explicit --config path: the error is returned as-is. A file the user
//     named on the command line must load, so the command aborts.
//   - Default path: a warning is written to stderr and built-in defaults are
//     returned, keeping the command operational. The loader treats a missing
//     default file as defaults with no error, so any error here means a file
//     exists but does not load.
func loadConfigWithFallback(ctx context.Context, app *App, rootFlags *rootFlagValues) (*config.Config, string, error) {
	opts := config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(rootFlags.configPath),
	}

	cfg, resolvedPath, err := app.Config.Load(ctx, opts)
	if err == nil {
		return cfg, resolvedPath, nil
	}

	if rootFlags.configPath != "" {
		return nil, "", err
	}

	fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, rootFlags.verbose))
	return config.DefaultConfig(), "", nil
}

// renderDiagnostics writes structured export diagnostics to stderr with
// lipgloss styling.
func renderDiagnostics(stderr io.Writer, diags []export.Diagnostic) {
	for _, diag := range diags {
		prefix := WarningStyle.Render("warning")
		if diag.Severity == export.SeverityError {
			prefix = ErrorStyle.Render("error")
		}

		if diag.Path != "" {
			fmt.Fprintf(stderr, "%s: %s (%s)\n", prefix, diag.Message, diag.Path)
			continue
		}

		fmt.Fprintf(stderr, "%s: %s\n", prefix, diag.Message)
	}
}
