// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MustWriteFile writes content to path with the given permissions.
// The test fails immediately if the write fails.
func MustWriteFile(t testing.TB, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustWriteExecutable writes an executable stub script named name into
// dir and returns its full path. Resolution tests use these stubs as
// fake converter binaries; the stub body never actually runs.
func MustWriteExecutable(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	MustWriteFile(t, path, "#!/bin/sh\nexit 0\n", 0o755)
	return path
}

// MustWriteNonExecutable writes a plain (non-executable) file named
// name into dir and returns its full path.
func MustWriteNonExecutable(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	MustWriteFile(t, path, "not a binary\n", 0o644)
	return path
}
