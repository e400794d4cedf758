// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"docport-cli/pkg/fspath"
	"docport-cli/pkg/platform"
)

// profileFileFor maps a shell to the startup file its PATH exports
// usually live in. GUI-launched host processes on macOS do not inherit
// the login PATH, which is why scraping this file recovers Homebrew
// installs the process environment never saw.
func profileFileFor(shell, home string) string {
	if home == "" {
		return ""
	}
	switch strings.TrimSuffix(filepath.Base(shell), platform.ExeSuffix) {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bash_profile")
	default:
		return filepath.Join(home, ".profile")
	}
}

// profilePathSegments reads the shell startup file and extracts the
// directory segments of every `export PATH=...` assignment, keeping
// only segments that look like binary install locations (mentioning
// "homebrew", "opt", or "bin"). Heuristic and best-effort: a missing
// or unreadable file yields nothing.
func profilePathSegments(facts platform.Facts) []string {
	profile := profileFileFor(facts.Shell, facts.Home)
	if profile == "" {
		return nil
	}
	f, err := os.Open(profile)
	if err != nil {
		return nil
	}
	defer func() {
		// Best-effort close; the file was only read.
		_ = f.Close()
	}()

	var segments []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		segments = append(segments, pathSegmentsFromExport(scanner.Text(), facts.Home)...)
	}
	return segments
}

// pathSegmentsFromExport extracts candidate directories from a single
// profile line of the form `export PATH=...`.
func pathSegmentsFromExport(line, home string) []string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "export PATH=") {
		return nil
	}
	value := strings.TrimPrefix(trimmed, "export PATH=")
	value = strings.Trim(value, `"'`)

	var segments []string
	for _, seg := range fspath.SplitShellPath(value) {
		if strings.Contains(seg, "$") {
			// $PATH references and other expansions cannot be
			// resolved statically; the login-shell echo covers them.
			continue
		}
		seg = fspath.ExpandUser(seg, home)
		lower := strings.ToLower(seg)
		if strings.Contains(lower, "homebrew") || strings.Contains(lower, "opt") || strings.Contains(lower, "bin") {
			segments = append(segments, seg)
		}
	}
	return segments
}
