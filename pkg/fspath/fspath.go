// SPDX-License-Identifier: MPL-2.0

// Package fspath provides small filesystem-path helpers shared by
// executable resolution and configuration handling: user-directory
// expansion, POSIX search-list splitting, and order-preserving
// deduplication of candidate directories.
package fspath

import (
	"path/filepath"
	"strings"
)

// ExpandUser replaces a leading "~" in path with the given home
// directory. A bare "~" expands to home itself; "~user" forms are not
// supported and are returned unchanged, as is everything when home is
// empty.
func ExpandUser(path, home string) string {
	if home == "" || path == "" || path[0] != '~' {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// SplitShellPath splits a POSIX PATH-style colon list into its
// directory entries, dropping empty segments. Shell PATH output is
// colon-separated regardless of the host's native list separator,
// which is why this does not use filepath.SplitList.
func SplitShellPath(s string) []string {
	parts := strings.Split(s, ":")
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

// DedupeKeepOrder returns the input entries with duplicates removed,
// keeping the first occurrence of each. Order is what gives search
// candidates their precedence, so it is preserved.
func DedupeKeepOrder(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
