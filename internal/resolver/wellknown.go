// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"os"
	"path/filepath"

	"docport-cli/pkg/platform"
)

// wellKnownDirs returns the curated install directories probed after
// PATH for the given OS family. Order matters: earlier entries win.
// The macOS list carries both Homebrew prefixes because Apple-silicon
// (/opt/homebrew) and Intel (/usr/local) installs coexist in the wild.
func wellKnownDirs(facts platform.Facts) []string {
	switch facts.OS {
	case platform.Darwin:
		dirs := []string{
			"/opt/homebrew/bin",
			"/usr/local/bin",
			"/usr/bin",
			"/opt/local/bin",
		}
		return append(dirs, homeDirs(facts.Home)...)
	case platform.Windows:
		dirs := make([]string, 0, 3)
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Pandoc"))
		}
		if programFiles := os.Getenv("ProgramFiles"); programFiles != "" {
			dirs = append(dirs, filepath.Join(programFiles, "Pandoc"))
		}
		if programFilesX86 := os.Getenv("ProgramFiles(x86)"); programFilesX86 != "" {
			dirs = append(dirs, filepath.Join(programFilesX86, "Pandoc"))
		}
		return dirs
	default:
		dirs := []string{
			"/usr/local/bin",
			"/usr/bin",
		}
		return append(dirs, homeDirs(facts.Home)...)
	}
}

// homeDirs lists the per-user install directories under home, or
// nothing when the home directory is unknown.
func homeDirs(home string) []string {
	if home == "" {
		return nil
	}
	return []string{
		filepath.Join(home, ".local", "bin"),
		filepath.Join(home, "bin"),
	}
}
