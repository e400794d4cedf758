// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"fmt"
	"os"
	"strings"

	"docport-cli/pkg/platform"
)

// materializeInput writes the job's document text to a transient file
// in the system temporary directory and returns its path together with
// a best-effort cleanup function. Exactly one file is created per job;
// callers must invoke cleanup after the converter finishes, success or
// not.
func materializeInput(documentName, content string) (string, func(), error) {
	pattern := fmt.Sprintf("docport-%s-*.md", sanitizeDocumentName(documentName))

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create transient input file: %w", err)
	}

	if _, err = tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()           // Best-effort close on error path
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup on error path
		return "", nil, fmt.Errorf("failed to write transient input file: %w", err)
	}

	if err = tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup on error path
		return "", nil, fmt.Errorf("failed to close transient input file: %w", err)
	}

	path := tmpFile.Name()
	cleanup := func() {
		// Removal failure must not hide the invocation result.
		_ = os.Remove(path)
	}
	return path, cleanup, nil
}

// sanitizeDocumentName reduces a document base name to characters that
// are safe inside a temp-file pattern on every platform. Names that
// collide with reserved Windows device names get a suffix so the
// temp file never resolves to a device.
func sanitizeDocumentName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	sanitized := strings.Trim(b.String(), "-")
	if sanitized == "" {
		sanitized = "document"
	}
	if platform.IsWindowsReservedName(sanitized) {
		sanitized += "-doc"
	}
	return sanitized
}
