// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"docport-cli/internal/convert"
	"docport-cli/internal/issue"
	"docport-cli/internal/watch"
	"docport-cli/pkg/types"

	"github.com/spf13/cobra"
)

// runWatchMode exports the document once immediately, then re-exports it
// whenever the document or its metadata sidecar changes. The watcher blocks
// until the context is cancelled (e.g., Ctrl+C).
func runWatchMode(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *exportFlagValues, documentPath string) error {
	// Open-after and watch mode are mutually exclusive: watch mode re-exports
	// on every save, and spawning a fresh viewer per save is never wanted.
	// The config-level open_after setting is suppressed for the same reason
	// (see buildExportRequest).
	if flags.open {
		return fmt.Errorf("--open and --watch cannot be used together")
	}

	ctx := cmd.Context()

	// Catch flag, configuration, and unreadable-document problems up front
	// instead of looping on the same failure after every save.
	cfg, _, err := loadConfigWithFallback(ctx, app, rootFlags)
	if err != nil {
		return failExport(cmd, app, newServiceError(err, issue.ConfigLoadFailedId,
			fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, rootFlags.verbose))), 1)
	}
	if _, svcErr := buildExportRequest(cfg, flags, documentPath); svcErr != nil {
		return failExport(cmd, app, svcErr, 1)
	}

	absDocument, err := filepath.Abs(documentPath)
	if err != nil {
		return fmt.Errorf("failed to resolve document path: %w", err)
	}
	baseDir := filepath.Dir(absDocument)
	docName := filepath.Base(absDocument)
	sidecarName := filepath.Base(convert.SidecarPath(absDocument))

	// Re-export through the normal single-export pipeline, reloading the
	// configuration and re-reading the document each time. Dispatch happens
	// in RunE, not here, so passing the original flags cannot recurse.
	reexport := func() error {
		return runExport(cmd, app, rootFlags, flags, documentPath)
	}

	fmt.Fprintf(app.stdout, "%s Watch mode: initial export of '%s'\n", VerboseHighlightStyle.Render("→"), docName)
	if execErr := reexport(); execErr != nil {
		// Log but don't stop — the user may fix the document and save again.
		fmt.Fprintf(app.stderr, "%s Initial export failed: %v\n", WarningStyle.Render("!"), execErr)
	}

	fmt.Fprintf(app.stdout, "\n%s Watching '%s' and '%s' for changes (Ctrl+C to stop)...\n\n",
		VerboseHighlightStyle.Render("→"), docName, sidecarName)

	w, err := watch.New(watch.Config{
		Patterns: []watch.GlobPattern{
			watch.GlobPattern(docName),
			watch.GlobPattern(sidecarName),
		},
		BaseDir:     types.FilesystemPath(baseDir),
		ClearScreen: flags.clear,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(app.stdout, "%s Detected %d change(s). Re-exporting '%s'...\n",
				VerboseHighlightStyle.Render("→"), len(changed), docName)
			if execErr := reexport(); execErr != nil {
				fmt.Fprintf(app.stderr, "%s Export failed: %v\n", WarningStyle.Render("!"), execErr)
			}
			fmt.Fprintf(app.stdout, "\n%s Watching for changes...\n\n", VerboseHighlightStyle.Render("→"))
			return nil
		},
		Stdout: app.stdout,
		Stderr: app.stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(ctx)
}
