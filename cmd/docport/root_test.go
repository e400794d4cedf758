// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"docport-cli/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	root := newRootCommand(NewApp(Dependencies{}))

	want := map[string]bool{
		"export":     false,
		"doctor":     false,
		"config":     false,
		"completion": false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command should have a %q subcommand", name)
		}
	}
}

func TestNewRootCommand_PersistentFlags(t *testing.T) {
	t.Parallel()

	root := newRootCommand(NewApp(Dependencies{}))

	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("root command should define --verbose")
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root command should define --config")
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		got := formatErrorForDisplay(errors.New("plain failure"), false)
		if got != "plain failure" {
			t.Errorf("formatErrorForDisplay() = %q", got)
		}
	})

	t.Run("actionable error uses Format", func(t *testing.T) {
		t.Parallel()
		ae := issue.NewErrorContext().
			WithOperation("read document").
			WithResource("/docs/report.md").
			WithSuggestion("Check that the path is correct").
			Wrap(errors.New("permission denied")).
			BuildError()

		got := formatErrorForDisplay(ae, false)
		if !strings.Contains(got, "read document") {
			t.Errorf("formatted error should name the operation, got %q", got)
		}
		if !strings.Contains(got, "Check that the path is correct") {
			t.Errorf("formatted error should carry the suggestion, got %q", got)
		}
	})

	t.Run("verbose shows the cause chain", func(t *testing.T) {
		t.Parallel()
		ae := issue.NewErrorContext().
			WithOperation("read document").
			Wrap(errors.New("underlying cause")).
			BuildError()

		got := formatErrorForDisplay(ae, true)
		if !strings.Contains(got, "underlying cause") {
			t.Errorf("verbose output should include the cause, got %q", got)
		}
	})
}
