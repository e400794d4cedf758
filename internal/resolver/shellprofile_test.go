// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"path/filepath"
	"reflect"
	"testing"

	"docport-cli/internal/testutil"
	"docport-cli/pkg/platform"
)

func TestProfileFileFor(t *testing.T) {
	t.Parallel()

	home := "/home/writer"

	tests := []struct {
		name  string
		shell string
		want  string
	}{
		{"zsh", "/bin/zsh", filepath.Join(home, ".zshrc")},
		{"bare zsh", "zsh", filepath.Join(home, ".zshrc")},
		{"bash", "/bin/bash", filepath.Join(home, ".bash_profile")},
		{"bash with exe suffix", "bash.exe", filepath.Join(home, ".bash_profile")},
		{"fish falls back", "/usr/bin/fish", filepath.Join(home, ".profile")},
		{"plain sh falls back", "/bin/sh", filepath.Join(home, ".profile")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := profileFileFor(tt.shell, home); got != tt.want {
				t.Errorf("profileFileFor(%q) = %q, want %q", tt.shell, got, tt.want)
			}
		})
	}

	if got := profileFileFor("/bin/zsh", ""); got != "" {
		t.Errorf("profileFileFor with empty home = %q, want empty", got)
	}
}

func TestPathSegmentsFromExport(t *testing.T) {
	t.Parallel()

	home := "/Users/writer"

	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "double quoted homebrew prefix",
			line: `export PATH="/opt/homebrew/bin:$PATH"`,
			want: []string{"/opt/homebrew/bin"},
		},
		{
			name: "single quoted",
			line: `export PATH='/usr/local/bin:$PATH'`,
			want: []string{"/usr/local/bin"},
		},
		{
			name: "unquoted multiple segments",
			line: `export PATH=/opt/homebrew/bin:/usr/local/bin:$PATH`,
			want: []string{"/opt/homebrew/bin", "/usr/local/bin"},
		},
		{
			name: "tilde expands against home",
			line: `export PATH="~/bin:$PATH"`,
			want: []string{filepath.Join(home, "bin")},
		},
		{
			name: "expansions are skipped",
			line: `export PATH="$HOME/bin:$PATH"`,
			want: nil,
		},
		{
			name: "non-install segments are dropped",
			line: `export PATH="/usr/share/misc:/opt/homebrew/bin"`,
			want: []string{"/opt/homebrew/bin"},
		},
		{
			name: "indented line",
			line: `  export PATH="/opt/local/bin:$PATH"`,
			want: []string{"/opt/local/bin"},
		},
		{
			name: "unrelated export",
			line: `export EDITOR=vim`,
			want: nil,
		},
		{
			name: "comment",
			line: `# export PATH="/opt/homebrew/bin"`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pathSegmentsFromExport(tt.line, home)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("pathSegmentsFromExport(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestProfilePathSegments(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(home, ".zshrc"),
		"# managed by setup script\n"+
			"export EDITOR=vim\n"+
			"export PATH=\"/opt/homebrew/bin:$PATH\"\n"+
			"export PATH=\"$PATH:/usr/local/bin\"\n",
		0o644)

	facts := platform.Facts{OS: platform.Darwin, Home: home, Shell: "/bin/zsh"}

	got := profilePathSegments(facts)
	want := []string{"/opt/homebrew/bin", "/usr/local/bin"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("profilePathSegments() = %v, want %v", got, want)
	}
}

func TestProfilePathSegmentsMissingFile(t *testing.T) {
	t.Parallel()

	facts := platform.Facts{OS: platform.Darwin, Home: t.TempDir(), Shell: "/bin/zsh"}
	if got := profilePathSegments(facts); got != nil {
		t.Errorf("profilePathSegments() = %v for a missing profile, want nil", got)
	}
}
