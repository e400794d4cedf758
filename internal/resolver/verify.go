// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"docport-cli/pkg/platform"
)

// isExecutable reports whether path names a regular file the current
// process may execute on the given platform. On the windows family the
// check is existence plus not-a-directory (execute permission bits do
// not exist there); elsewhere at least one execute bit must be set.
func isExecutable(path string, facts platform.Facts) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if facts.IsWindows() {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// verifyWithSuffixRetry applies the executability check to path. When
// the check fails on the windows family and path lacks the executable
// suffix, it retries with the suffix appended (users routinely
// configure "C:\tools\pandoc" and mean "pandoc.exe"). The verified
// path is returned so callers surface exactly what passed the check.
func verifyWithSuffixRetry(path string, facts platform.Facts) (string, bool) {
	if isExecutable(path, facts) {
		return path, true
	}
	suffix := facts.ExecutableSuffix()
	if suffix == "" || strings.EqualFold(filepath.Ext(path), suffix) {
		return "", false
	}
	if retry := path + suffix; isExecutable(retry, facts) {
		return retry, true
	}
	return "", false
}
