// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"fmt"
	"sort"
	"strings"

	"docport-cli/pkg/platform"

	"golang.org/x/exp/maps"
	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

type (
	// commandProfile captures how one OS family shapes the converter
	// command: how arguments are quoted for display and whether the
	// invocation is wrapped in the default shell. One table entry per
	// family replaces per-OS string-building branches.
	commandProfile struct {
		// wrapInShell runs the command through the default shell so
		// argument splitting is consistent regardless of the caller's
		// ambient shell. The windows family invokes the executable
		// directly instead.
		wrapInShell bool
		// quote renders one argument for the assembled command line.
		quote func(string) (string, error)
	}
)

var (
	windowsProfile = commandProfile{wrapInShell: false, quote: quoteWindows}
	posixProfile   = commandProfile{wrapInShell: true, quote: quotePOSIX}
)

// profileFor selects the command profile for the OS family.
func profileFor(facts platform.Facts) commandProfile {
	if facts.IsWindows() {
		return windowsProfile
	}
	return posixProfile
}

// quotePOSIX single-quotes an argument exactly as a POSIX shell needs
// it, leaving arguments without special characters untouched.
func quotePOSIX(s string) (string, error) {
	return syntax.Quote(s, syntax.LangPOSIX)
}

// quoteWindows double-quotes arguments containing whitespace. The
// windows invocation passes arguments directly to the process, so the
// quoting only affects the displayed command line.
func quoteWindows(s string) (string, error) {
	if s == "" || strings.ContainsAny(s, " \t") {
		return `"` + s + `"`, nil
	}
	return s, nil
}

// buildArgs assembles the converter argument list for a job: the
// transient input first, then the output selection, then the PDF
// engine when one is forced, then sidecar metadata, then the user's
// free-form extras split with shell semantics.
func buildArgs(job Job, inputPath string) ([]string, error) {
	args := []string{inputPath, "-o", job.OutputPath}

	if job.Format == FormatPDF && !job.Engine.IsAuto() {
		args = append(args, "--pdf-engine="+string(job.Engine))
	}

	keys := maps.Keys(job.Metadata)
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "--metadata", key+"="+job.Metadata[key])
	}

	if strings.TrimSpace(job.ExtraArgs) != "" {
		extra, err := shell.Fields(job.ExtraArgs, nil)
		if err != nil {
			return nil, fmt.Errorf("splitting extra arguments %q: %w", job.ExtraArgs, err)
		}
		args = append(args, extra...)
	}

	return args, nil
}

// renderCommandLine joins the executable and its arguments into one
// quoted string. On POSIX families this exact string is handed to the
// default shell; on windows it is diagnostics only.
func renderCommandLine(profile commandProfile, exePath string, args []string) (string, error) {
	parts := make([]string, 0, len(args)+1)

	quoted, err := profile.quote(exePath)
	if err != nil {
		return "", fmt.Errorf("quoting executable path %q: %w", exePath, err)
	}
	parts = append(parts, quoted)

	for _, arg := range args {
		quoted, err := profile.quote(arg)
		if err != nil {
			return "", fmt.Errorf("quoting argument %q: %w", arg, err)
		}
		parts = append(parts, quoted)
	}

	return strings.Join(parts, " "), nil
}
