// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docport-cli/internal/config"
	"docport-cli/internal/resolver"
	"docport-cli/pkg/platform"

	"github.com/spf13/cobra"
)

// fakeToolResolver implements ToolResolver with canned answers.
type fakeToolResolver struct {
	resolved resolver.ResolvedExecutable
	err      error
	dirs     []resolver.SearchDir
}

func (f *fakeToolResolver) Resolve(_ context.Context, _ resolver.Hint, _ platform.Facts) (resolver.ResolvedExecutable, error) {
	return f.resolved, f.err
}

func (f *fakeToolResolver) SearchDirs(_ platform.Facts) []resolver.SearchDir {
	return f.dirs
}

func newDoctorTestApp(res ToolResolver) (*App, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config:   &fakeConfigProvider{cfg: config.DefaultConfig()},
		Resolver: res,
		Stdout:   &stdout,
		Stderr:   &stderr,
	})
	return app, &stdout, &stderr
}

func TestRunDoctor_Resolved(t *testing.T) {
	t.Parallel()

	existing := t.TempDir()
	res := &fakeToolResolver{
		resolved: resolver.ResolvedExecutable{
			Path:       "/fake/install/pandoc",
			Provenance: resolver.ProvenanceWellKnownLocation,
		},
		dirs: []resolver.SearchDir{
			{Path: existing, Provenance: resolver.ProvenancePathSearch},
			{Path: filepath.Join(existing, "missing"), Provenance: resolver.ProvenanceWellKnownLocation},
		},
	}
	app, stdout, _ := newDoctorTestApp(res)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	if err := runDoctor(cmd, app, &rootFlagValues{}, ""); err != nil {
		t.Fatalf("runDoctor failed: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "/fake/install/pandoc") {
		t.Errorf("output should show the resolved path, got:\n%s", out)
	}
	if !strings.Contains(out, "well-known-location") {
		t.Errorf("output should show the provenance tag, got:\n%s", out)
	}
	if !strings.Contains(out, existing) {
		t.Errorf("output should list the search directories, got:\n%s", out)
	}
	if !strings.Contains(out, "lookup command:") {
		t.Errorf("output should show the platform lookup command, got:\n%s", out)
	}
}

func TestRunDoctor_NotFound(t *testing.T) {
	t.Parallel()

	res := &fakeToolResolver{
		err: &resolver.ToolNotFoundError{Hint: "", LookupCommand: "which pandoc"},
	}
	app, _, stderr := newDoctorTestApp(res)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err := runDoctor(cmd, app, &rootFlagValues{}, "")
	if err == nil {
		t.Fatal("doctor should fail when resolution fails")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error should be an ExitError, got %T", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
	if !errors.Is(err, resolver.ErrToolNotFound) {
		t.Error("error should wrap the resolution failure")
	}
	if !strings.Contains(strings.ToLower(stderr.String()), "pandoc") {
		t.Errorf("stderr should render the installation help, got:\n%s", stderr.String())
	}
}

func TestRunDoctor_HintFlagOverridesConfig(t *testing.T) {
	t.Parallel()

	res := &fakeToolResolver{
		resolved: resolver.ResolvedExecutable{Path: "/custom/pandoc", Provenance: resolver.ProvenanceUserAbsolute},
	}
	app, stdout, _ := newDoctorTestApp(res)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	if err := runDoctor(cmd, app, &rootFlagValues{}, "/custom/pandoc"); err != nil {
		t.Fatalf("runDoctor failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "/custom/pandoc") {
		t.Errorf("output should show the hinted path, got:\n%s", stdout.String())
	}
}

func TestShellExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "fakeshell")
	if err := os.WriteFile(file, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		name  string
		shell string
		want  bool
	}{
		{"existing absolute path", file, true},
		{"missing absolute path", filepath.Join(dir, "nope"), false},
		{"directory is not a shell", dir, false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := shellExists(tt.shell); got != tt.want {
				t.Errorf("shellExists(%q) = %v, want %v", tt.shell, got, tt.want)
			}
		})
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !dirExists(dir) {
		t.Error("dirExists should be true for a real directory")
	}
	if dirExists(file) {
		t.Error("dirExists should be false for a file")
	}
	if dirExists(filepath.Join(dir, "missing")) {
		t.Error("dirExists should be false for a missing path")
	}
}

func TestOrUnknown(t *testing.T) {
	t.Parallel()

	if got := orUnknown("/home/user"); got != "/home/user" {
		t.Errorf("orUnknown should pass values through, got %q", got)
	}
	if got := orUnknown(""); !strings.Contains(got, "unknown") {
		t.Errorf("orUnknown(\"\") should mark the value unknown, got %q", got)
	}
}
