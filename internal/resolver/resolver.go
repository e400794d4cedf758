// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"docport-cli/pkg/fspath"
	"docport-cli/pkg/platform"

	"github.com/charmbracelet/log"
)

// DefaultToolName is the bare converter name searched for when the
// hint does not point anywhere specific.
const DefaultToolName = "pandoc"

// defaultProbeTimeout bounds each diagnostic subprocess spawned by the
// shell-introspection, mdfind, and which/where strategies.
const defaultProbeTimeout = 3 * time.Second

// ErrToolNotFound is the sentinel every aggregate resolution failure wraps.
var ErrToolNotFound = errors.New("converter executable not found")

type (
	// Hint is the user-supplied executable location: an absolute or
	// relative path, or a bare command name. Supplied by configuration,
	// read-only to the resolver.
	Hint string

	// ResolvedExecutable is a verified absolute path to the converter
	// plus the provenance of the strategy that found it.
	ResolvedExecutable struct {
		Path       string
		Provenance Provenance
	}

	// SearchDir is one candidate directory together with the provenance
	// a hit inside it would carry.
	SearchDir struct {
		Path       string
		Provenance Provenance
	}

	// CommandRunner spawns a diagnostic subprocess and returns its
	// standard output. The resolver uses it for the login-shell PATH
	// echo, mdfind, and which/where; tests swap it to fake or count
	// those probes.
	CommandRunner func(ctx context.Context, name string, args ...string) (string, error)

	// ToolNotFoundError reports that every strategy failed. It names the
	// hint that was tried and the platform lookup command a user can run
	// to see what their shell finds.
	ToolNotFoundError struct {
		Hint          Hint
		LookupCommand string
	}

	// Resolver locates the external converter binary. Construct with New.
	Resolver struct {
		logger       *log.Logger
		runCommand   CommandRunner
		wellKnown    func(platform.Facts) []string
		probeTimeout time.Duration
	}

	// strategy pairs a diagnostic name with one resolution attempt.
	strategy struct {
		name string
		fn   func(ctx context.Context, hint Hint, facts platform.Facts) (ResolvedExecutable, bool)
	}
)

// IsDefault reports whether the hint is the fallback bare name (or
// empty, which callers treat the same way).
func (h Hint) IsDefault() bool {
	return h == "" || string(h) == DefaultToolName
}

// Error implements the error interface with the actionable message the
// aggregate failure surfaces: the hint that was tried and the exact
// discovery command for this platform.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf(
		"no executable %s found (hint tried: %q); run '%s' to see what your shell finds, or set tool.path in the configuration",
		DefaultToolName, string(e.Hint), e.LookupCommand,
	)
}

// Unwrap lets errors.Is match ErrToolNotFound.
func (e *ToolNotFoundError) Unwrap() error {
	return ErrToolNotFound
}

// LookupCommand returns the platform-appropriate command a user runs to
// locate a binary on PATH ("which pandoc" on POSIX, "where pandoc" on
// the windows family).
func LookupCommand(facts platform.Facts) string {
	if facts.IsWindows() {
		return "where " + DefaultToolName
	}
	return "which " + DefaultToolName
}

// New creates a Resolver that logs strategy-level diagnostics to the
// given logger. A nil logger discards them.
func New(logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		logger:       logger,
		runCommand:   runCommand,
		wellKnown:    wellKnownDirs,
		probeTimeout: defaultProbeTimeout,
	}
}

// Resolve turns a hint into a verified executable path, trying the
// strategies in their fixed order and stopping at the first success.
// Strategy-level failures are logged and swallowed; only the aggregate
// ToolNotFoundError reaches the caller.
func (r *Resolver) Resolve(ctx context.Context, hint Hint, facts platform.Facts) (ResolvedExecutable, error) {
	strategies := []strategy{
		{"user-supplied absolute path", r.fromAbsoluteHint},
		{"hint relative to working directory", r.fromRelativeHint},
		{"PATH and well-known directories", r.fromSearchDirs},
		{"shell profile introspection", r.fromShellProfile},
		{"filesystem search", r.fromFilesystemSearch},
		{"which/where lookup", r.fromLookupCommand},
	}
	return r.firstSuccess(ctx, strategies, hint, facts)
}

// firstSuccess runs the strategies in order and returns the first hit.
// A failure in one strategy never aborts the chain, it only advances
// to the next one.
func (r *Resolver) firstSuccess(ctx context.Context, strategies []strategy, hint Hint, facts platform.Facts) (ResolvedExecutable, error) {
	for _, s := range strategies {
		exe, ok := s.fn(ctx, hint, facts)
		if ok {
			r.logger.Debug("resolved converter",
				"strategy", s.name, "path", exe.Path, "provenance", exe.Provenance.String())
			return exe, nil
		}
		r.logger.Debug("strategy exhausted", "strategy", s.name)
	}

	err := &ToolNotFoundError{Hint: hint, LookupCommand: LookupCommand(facts)}
	r.logger.Debug("all strategies exhausted",
		"hint", string(hint), "os", facts.OS, "pathEntries", len(facts.PathList))
	return ResolvedExecutable{}, err
}

// fromAbsoluteHint accepts the hint verbatim when it is an absolute
// path to something executable.
func (r *Resolver) fromAbsoluteHint(_ context.Context, hint Hint, facts platform.Facts) (ResolvedExecutable, bool) {
	path := string(hint)
	if !filepath.IsAbs(path) {
		return ResolvedExecutable{}, false
	}
	verified, ok := verifyWithSuffixRetry(path, facts)
	if !ok {
		r.logger.Debug("absolute hint is not executable", "path", path)
		return ResolvedExecutable{}, false
	}
	return ResolvedExecutable{Path: verified, Provenance: ProvenanceUserAbsolute}, true
}

// fromRelativeHint resolves a non-default, non-absolute hint against
// the working directory. The default bare name is excluded: a stray
// "pandoc" file in the current directory must not shadow the real
// install found by the later strategies.
func (r *Resolver) fromRelativeHint(_ context.Context, hint Hint, facts platform.Facts) (ResolvedExecutable, bool) {
	path := string(hint)
	if hint.IsDefault() || filepath.IsAbs(path) || facts.WorkDir == "" {
		return ResolvedExecutable{}, false
	}
	verified, ok := verifyWithSuffixRetry(filepath.Join(facts.WorkDir, path), facts)
	if !ok {
		return ResolvedExecutable{}, false
	}
	return ResolvedExecutable{Path: verified, Provenance: ProvenanceUserRelative}, true
}

// SearchDirs returns the merged, deduplicated candidate directory list
// the search-path strategy probes for these facts: PATH entries first,
// then the curated well-known install directories understood for the
// OS family. The doctor command renders this list.
func (r *Resolver) SearchDirs(facts platform.Facts) []SearchDir {
	seen := make(map[string]bool)
	var dirs []SearchDir
	add := func(path string, prov Provenance) {
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		dirs = append(dirs, SearchDir{Path: path, Provenance: prov})
	}
	for _, p := range facts.PathList {
		add(p, ProvenancePathSearch)
	}
	for _, p := range r.wellKnown(facts) {
		add(p, ProvenanceWellKnownLocation)
	}
	return dirs
}

// fromSearchDirs probes every PATH and well-known directory, in order,
// for the canonical tool name.
func (r *Resolver) fromSearchDirs(_ context.Context, _ Hint, facts platform.Facts) (ResolvedExecutable, bool) {
	name := DefaultToolName + facts.ExecutableSuffix()
	dirs := r.SearchDirs(facts)
	for _, dir := range dirs {
		candidate := filepath.Join(dir.Path, name)
		if isExecutable(candidate, facts) {
			return ResolvedExecutable{Path: candidate, Provenance: dir.Provenance}, true
		}
	}
	r.logger.Debug("search directories probed without a hit", "count", len(dirs))
	return ResolvedExecutable{}, false
}

// fromShellProfile is the macOS-only recovery for GUI-launched hosts
// whose PATH lacks the login shell's additions: scrape export PATH
// lines from the profile, ask the login shell to echo its PATH, then
// probe every collected directory like the search-path strategy.
func (r *Resolver) fromShellProfile(ctx context.Context, _ Hint, facts platform.Facts) (ResolvedExecutable, bool) {
	if !facts.IsDarwin() {
		return ResolvedExecutable{}, false
	}

	candidates := profilePathSegments(facts)
	if out, err := r.probe(ctx, facts.Shell, "-l", "-c", "echo $PATH"); err == nil {
		candidates = append(candidates, fspath.SplitShellPath(firstLine(out))...)
	} else {
		r.logger.Debug("login shell PATH echo failed", "shell", facts.Shell, "error", err)
	}

	name := DefaultToolName + facts.ExecutableSuffix()
	for _, dir := range fspath.DedupeKeepOrder(candidates) {
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate, facts) {
			return ResolvedExecutable{Path: candidate, Provenance: ProvenanceShellIntrospection}, true
		}
	}
	return ResolvedExecutable{}, false
}

// fromFilesystemSearch asks Spotlight for files named after the tool
// (macOS only), skips documentation hits, and returns the first
// executable match.
func (r *Resolver) fromFilesystemSearch(ctx context.Context, _ Hint, facts platform.Facts) (ResolvedExecutable, bool) {
	if !facts.IsDarwin() {
		return ResolvedExecutable{}, false
	}
	out, err := r.probe(ctx, "mdfind", "-name", DefaultToolName)
	if err != nil {
		r.logger.Debug("mdfind probe failed", "error", err)
		return ResolvedExecutable{}, false
	}
	for _, line := range strings.Split(out, "\n") {
		candidate := strings.TrimSpace(line)
		if candidate == "" || strings.HasSuffix(candidate, ".html") || strings.HasSuffix(candidate, ".txt") {
			continue
		}
		if isExecutable(candidate, facts) {
			return ResolvedExecutable{Path: candidate, Provenance: ProvenanceFilesystemSearch}, true
		}
	}
	return ResolvedExecutable{}, false
}

// fromLookupCommand shells out to which/where through the default shell
// and verifies the first line of output like any other candidate.
func (r *Resolver) fromLookupCommand(ctx context.Context, _ Hint, facts platform.Facts) (ResolvedExecutable, bool) {
	if facts.Shell == "" {
		return ResolvedExecutable{}, false
	}
	args := append(platform.ShellCommandArgs(facts.Shell), LookupCommand(facts))
	out, err := r.probe(ctx, facts.Shell, args...)
	if err != nil {
		r.logger.Debug("lookup command failed", "command", LookupCommand(facts), "error", err)
		return ResolvedExecutable{}, false
	}
	candidate := firstLine(out)
	if candidate == "" || !isExecutable(candidate, facts) {
		return ResolvedExecutable{}, false
	}
	return ResolvedExecutable{Path: candidate, Provenance: ProvenanceWhichCommand}, true
}

// probe runs one diagnostic subprocess under the bounded wait.
func (r *Resolver) probe(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.probeTimeout)
	defer cancel()
	return r.runCommand(ctx, name, args...)
}

// runCommand is the real CommandRunner: run the process, capture
// standard output, and report any spawn or exit failure.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("probe %s: %w", name, err)
	}
	return stdout.String(), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
