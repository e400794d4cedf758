// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"docport-cli/internal/config"
	"docport-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flag values shared by every
// subcommand. A pointer to one instance is threaded through the command
// constructors; handlers read it after Cobra has parsed the flags.
type rootFlagValues struct {
	// verbose enables verbose output.
	verbose bool
	// configPath is the explicit --config flag value.
	configPath string
}

// newRootCommand assembles the docport command tree.
func newRootCommand(app *App) *cobra.Command {
	rootFlags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "docport",
		Short: "Export Markdown documents with pandoc",
		Long: TitleStyle.Render("docport") + SubtitleStyle.Render(" - Export Markdown documents with pandoc") + `

docport exports Markdown documents to PDF, DOCX, HTML, EPUB, and ODT by
driving an external pandoc binary. It locates a usable pandoc on its own
(configured path, PATH, well-known install locations, shell introspection),
so exports keep working even when the host launched docport with a
stripped-down PATH.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Write a Markdown document
  2. Run: docport export <document>
  3. Find the artifact next to the document

` + SubtitleStyle.Render("Examples:") + `
  docport export report.md             Export to PDF (the default format)
  docport export report.md --to docx   Export to DOCX
  docport export report.md --watch     Re-export on every save
  docport doctor                       Show how pandoc gets located
  docport config show                  Show current configuration`,
	}

	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "config file (default is $HOME/.config/docport/config.cue)")

	rootCmd.AddCommand(newExportCommand(app, rootFlags))
	rootCmd.AddCommand(newDoctorCommand(app, rootFlags))
	rootCmd.AddCommand(newConfigCommand(app, rootFlags))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// applyVerbosity combines the --verbose flag with the configured default and
// raises the logger level when either asks for it. It returns the effective
// verbose value for display formatting.
func applyVerbosity(app *App, rootFlags *rootFlagValues, cfg *config.Config) bool {
	verbose := rootFlags.verbose
	if cfg != nil && cfg.UI.Verbose {
		verbose = true
	}
	if verbose {
		app.Logger.SetLevel(log.DebugLevel)
	}
	return verbose
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute assembles the command tree and runs it. This is called by
// main.main(). It only needs to happen once.
func Execute() {
	app := NewApp(Dependencies{})

	// Use fang.Execute for enhanced Cobra styling.
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
