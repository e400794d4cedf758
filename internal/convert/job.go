// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidJob is the sentinel error wrapped by InvalidJobError.
var ErrInvalidJob = errors.New("invalid conversion job")

type (
	// Job describes one export request: the document text to convert,
	// where the result goes, and how the converter should be steered.
	// Created per request, discarded after the invocation completes.
	Job struct {
		// DocumentName is the base name of the source document. It
		// namespaces the transient input file so concurrent exports of
		// different documents never collide.
		DocumentName string
		// Content is the document text at export time.
		Content string
		// Format is the export target.
		Format Format
		// OutputPath is the absolute path the converter writes to.
		OutputPath string
		// Engine optionally overrides the PDF engine. Ignored for
		// non-PDF formats; the zero value means auto.
		Engine PDFEngine
		// ExtraArgs is a free-form argument string appended to the
		// command line after shell-style word splitting.
		ExtraArgs string
		// Metadata holds key=value pairs passed to the converter as
		// --metadata flags, typically loaded from the document's
		// sidecar file.
		Metadata map[string]string
	}

	// InvalidJobError is returned when a Job has invalid fields. It
	// wraps ErrInvalidJob for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidJobError struct {
		FieldErrors []error
	}

	// Result is the classified outcome of one converter invocation.
	Result struct {
		// ExitCode is the exit code of the converter process.
		ExitCode ExitCode
		// Outcome is the classification of the invocation.
		Outcome Outcome
		// Output contains captured stdout.
		Output string
		// ErrOutput contains captured stderr.
		ErrOutput string
		// CommandLine is the human-readable command that ran, for
		// diagnostics and verbose output.
		CommandLine string
		// OutputPath is where the converter was told to write the
		// artifact. Meaningful whatever the outcome; the file only
		// exists on success.
		OutputPath string
		// InputPath is the transient input file the converter read.
		// The file is removed before Result is returned; the path is
		// kept for diagnostics only.
		InputPath string
		// Error holds the spawn-level error when the process could not
		// be started at all. Nil whenever the converter actually ran.
		Error error
	}
)

// Error implements the error interface.
func (e *InvalidJobError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid conversion job: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidJob so callers can use errors.Is for
// programmatic detection.
func (e *InvalidJobError) Unwrap() error { return ErrInvalidJob }

// IsValid returns whether the Job can be turned into an invocation,
// and a list of validation errors if it cannot.
func (j Job) IsValid() (bool, []error) {
	var errs []error
	if _, formatErrs := j.Format.IsValid(); formatErrs != nil {
		errs = append(errs, formatErrs...)
	}
	if _, engineErrs := j.Engine.IsValid(); engineErrs != nil {
		errs = append(errs, engineErrs...)
	}
	if strings.TrimSpace(j.OutputPath) == "" {
		errs = append(errs, errors.New("output path must not be empty"))
	}
	if errs != nil {
		return false, errs
	}
	return true, nil
}

// Success returns true if the converter ran and exited cleanly.
func (r *Result) Success() bool {
	return r.Outcome == OutcomeSuccess
}

// Warning returns the stderr text when the converter succeeded but
// still wrote diagnostics, and the empty string otherwise. Warnings
// are surfaced to logs, never treated as failures.
func (r *Result) Warning() string {
	if r.Outcome == OutcomeSuccess && strings.TrimSpace(r.ErrOutput) != "" {
		return strings.TrimSpace(r.ErrOutput)
	}
	return ""
}
