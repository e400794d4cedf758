// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"docport-cli/pkg/types"
)

var (
	// ErrInvalidGlobPattern is the sentinel error wrapped by InvalidGlobPatternError.
	ErrInvalidGlobPattern = errors.New("invalid glob pattern")

	// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
	ErrInvalidWatchConfig = errors.New("invalid watch configuration")
)

type (
	// GlobPattern is a doublestar-compatible glob pattern (e.g. "**/*.md").
	// A valid pattern must be non-empty and syntactically well formed.
	GlobPattern string

	// InvalidGlobPatternError is returned when a GlobPattern value is empty
	// or rejected by the doublestar syntax check.
	InvalidGlobPatternError struct {
		Value GlobPattern
	}

	// Config holds the parameters for a Watcher.
	Config struct {
		// Patterns select which files trigger callbacks. Paths are matched
		// relative to BaseDir. An empty slice watches all non-ignored files.
		Patterns []GlobPattern

		// Ignore lists additional patterns for paths that must never trigger
		// callbacks. These are merged with the built-in default ignores.
		Ignore []GlobPattern

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative values fall back to defaultDebounce.
		Debounce time.Duration

		// ClearScreen clears the terminal with ANSI escape sequences before
		// each callback invocation. No terminal detection is performed;
		// callers should enable it only when Stdout is a real terminal.
		ClearScreen bool

		// BaseDir is the root directory to watch. All patterns are resolved
		// relative to it. The zero value defaults to the current working
		// directory.
		BaseDir types.FilesystemPath

		// OnChange is called after the debounce window closes with the
		// deduplicated list of changed paths (relative to BaseDir). A nil
		// callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Stdout and Stderr receive informational and error messages. nil
		// values default to os.Stdout and os.Stderr.
		Stdout io.Writer
		Stderr io.Writer
	}

	// InvalidWatchConfigError aggregates the field errors found by
	// Config.Validate.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}
)

// String returns the string representation of the GlobPattern.
func (g GlobPattern) String() string { return string(g) }

// IsValid returns whether the GlobPattern is valid.
// A valid pattern must be non-empty and accepted by doublestar.
func (g GlobPattern) IsValid() (bool, []error) {
	if g == "" || !doublestar.ValidatePattern(string(g)) {
		return false, []error{&InvalidGlobPatternError{Value: g}}
	}
	return true, nil
}

// Validate checks the domain fields of the Config. BaseDir is only checked
// when set, since its zero value selects the working directory default.
func (c Config) Validate() error {
	var fieldErrors []error

	for _, pat := range c.Patterns {
		if ok, errs := pat.IsValid(); !ok {
			fieldErrors = append(fieldErrors, errs...)
		}
	}
	for _, pat := range c.Ignore {
		if ok, errs := pat.IsValid(); !ok {
			fieldErrors = append(fieldErrors, errs...)
		}
	}
	if c.BaseDir != "" {
		if ok, errs := c.BaseDir.IsValid(); !ok {
			fieldErrors = append(fieldErrors, errs...)
		}
	}

	if len(fieldErrors) > 0 {
		return &InvalidWatchConfigError{FieldErrors: fieldErrors}
	}
	return nil
}

// Error implements the error interface for InvalidGlobPatternError.
func (e *InvalidGlobPatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q: must be a non-empty doublestar pattern", e.Value)
}

// Unwrap returns ErrInvalidGlobPattern for errors.Is() compatibility.
func (e *InvalidGlobPatternError) Unwrap() error { return ErrInvalidGlobPattern }

// Error implements the error interface for InvalidWatchConfigError.
func (e *InvalidWatchConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid watch configuration: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid watch configuration: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }
