// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"os"
	"strings"
	"testing"
)

func TestMaterializeInput(t *testing.T) {
	t.Parallel()

	path, cleanup, err := materializeInput("weekly report", "# Weekly\n\ncontent\n")
	if err != nil {
		t.Fatalf("materializeInput() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading transient input: %v", err)
	}
	if string(data) != "# Weekly\n\ncontent\n" {
		t.Errorf("transient input content = %q", data)
	}
	if !strings.Contains(path, "docport-weekly-report-") {
		t.Errorf("transient input path %q not namespaced by document name", path)
	}
	if !strings.HasSuffix(path, ".md") {
		t.Errorf("transient input path %q lacks the markdown extension", path)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("transient input %q still present after cleanup", path)
	}

	// Cleanup is best-effort and safe to call twice.
	cleanup()
}

func TestSanitizeDocumentName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report", "report"},
		{"spaces become dashes", "weekly report 2026", "weekly-report-2026"},
		{"path separators stripped", "../../etc/passwd", "etc-passwd"},
		{"empty falls back", "", "document"},
		{"only specials falls back", "!!!", "document"},
		{"windows reserved name escaped", "CON", "CON-doc"},
		{"reserved lowercase escaped", "nul", "nul-doc"},
		{"extension dots become dashes", "notes.md", "notes-md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sanitizeDocumentName(tt.in); got != tt.want {
				t.Errorf("sanitizeDocumentName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
