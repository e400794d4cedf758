// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"docport-cli/internal/issue"
	"docport-cli/internal/resolver"
	"docport-cli/pkg/platform"

	"github.com/spf13/cobra"
)

// newDoctorCommand creates the `docport doctor` command. Doctor walks the
// same resolution pipeline an export uses and reports what it finds, so a
// "pandoc not found" report can be debugged without running an export.
func newDoctorCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var hintFlag string

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose converter resolution",
		Long: `Diagnose converter resolution.

Doctor snapshots the host environment, lists every directory the resolver
would search together with the provenance a hit there would carry, and then
runs the full resolution to show where the converter actually comes from.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, app, rootFlags, hintFlag)
		},
	}

	doctorCmd.Flags().StringVar(&hintFlag, "hint", "", "try this executable path or name instead of tool.path")

	return doctorCmd
}

func runDoctor(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, hintFlag string) error {
	ctx := cmd.Context()

	cfg, _, err := loadConfigWithFallback(ctx, app, rootFlags)
	if err != nil {
		return failExport(cmd, app, newServiceError(err, issue.ConfigLoadFailedId,
			fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, rootFlags.verbose))), 1)
	}
	applyVerbosity(app, rootFlags, cfg)

	hint := resolver.Hint(cfg.Tool.Path)
	if hintFlag != "" {
		hint = resolver.Hint(hintFlag)
	}

	facts := platform.Current()
	keyStyle := CmdStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("docport doctor"))
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("platform"))
	fmt.Fprintf(app.stdout, "  os: %s (%s)\n", facts.OS, facts.Arch)
	fmt.Fprintf(app.stdout, "  home: %s\n", orUnknown(facts.Home))
	fmt.Fprintf(app.stdout, "  workdir: %s\n", orUnknown(facts.WorkDir))

	shellOK := shellExists(facts.Shell)
	shellMark := SuccessStyle.Render("✓")
	if !shellOK {
		shellMark = ErrorStyle.Render("✗")
	}
	fmt.Fprintf(app.stdout, "  shell: %s %s\n", orUnknown(facts.Shell), shellMark)
	fmt.Fprintf(app.stdout, "  path entries: %d\n", len(facts.PathList))
	fmt.Fprintln(app.stdout)

	// A missing shell only disables the shell-introspection strategy; the
	// other strategies still run, so this is a warning rather than an abort.
	if !shellOK {
		if rendered, renderErr := issue.Get(issue.ShellNotFoundId).Render("dark"); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
	}

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("search"))
	if hint.IsDefault() {
		fmt.Fprintf(app.stdout, "  hint: %s\n", SubtitleStyle.Render(fmt.Sprintf("(default %q)", resolver.DefaultToolName)))
	} else {
		fmt.Fprintf(app.stdout, "  hint: %s\n", CmdStyle.Render(string(hint)))
	}
	fmt.Fprintf(app.stdout, "  lookup command: %s\n", CmdStyle.Render(resolver.LookupCommand(facts)))
	for _, dir := range app.Resolver.SearchDirs(facts) {
		mark := VerboseStyle.Render("✗")
		if dirExists(dir.Path) {
			mark = SuccessStyle.Render("✓")
		}
		fmt.Fprintf(app.stdout, "  %s %s %s\n", mark, dir.Path, SubtitleStyle.Render("("+dir.Provenance.String()+")"))
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("resolution"))
	resolved, err := app.Resolver.Resolve(ctx, hint, facts)
	if err != nil {
		fmt.Fprintf(app.stdout, "  %s %v\n", ErrorStyle.Render("✗"), err)
		if rendered, renderErr := issue.Get(issue.PandocNotFoundId).Render("dark"); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintf(app.stdout, "  %s resolved %s %s\n",
		SuccessStyle.Render("✓"), CmdStyle.Render(resolved.Path),
		SubtitleStyle.Render("("+resolved.Provenance.String()+")"))
	if version := probeVersion(ctx, resolved.Path); version != "" {
		fmt.Fprintf(app.stdout, "  version: %s\n", version)
	}
	return nil
}

// probeVersion asks the resolved binary for its version line. Resolution
// already verified the file is executable, so a failed probe is not worth
// reporting and degrades to an empty string.
func probeVersion(ctx context.Context, path string) string {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line)
}

func orUnknown(s string) string {
	if s == "" {
		return SubtitleStyle.Render("(unknown)")
	}
	return s
}

// shellExists reports whether the shell path or name resolves to a file.
func shellExists(shell string) bool {
	if shell == "" {
		return false
	}
	if filepath.IsAbs(shell) {
		info, err := os.Stat(shell)
		return err == nil && !info.IsDir()
	}
	_, err := exec.LookPath(shell)
	return err == nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
