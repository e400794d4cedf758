// SPDX-License-Identifier: MPL-2.0

package export

const (
	// SeverityWarning indicates a recoverable export warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal export error diagnostic.
	SeverityError Severity = "error"
)

// Diagnostic codes emitted by the export service.
const (
	// CodeOutputDirFallback marks an export that fell back to the
	// document's own directory because the configured output directory
	// could not be created.
	CodeOutputDirFallback = "output_dir_fallback"
	// CodeMetadataSidecarSkipped marks a malformed metadata sidecar
	// that was ignored.
	CodeMetadataSidecarSkipped = "metadata_sidecar_skipped"
	// CodeConverterStderr carries converter stderr text from an export
	// that still succeeded.
	CodeConverterStderr = "converter_stderr"
	// CodeOpenAfterFailed marks a produced file that could not be
	// opened with the platform opener.
	CodeOpenAfterFailed = "open_after_failed"
)

type (
	// Severity represents export diagnostic severity.
	Severity string

	// Diagnostic represents a structured export diagnostic that is
	// returned to callers (rather than written to stderr) for
	// consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "output_dir_fallback").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)
