// SPDX-License-Identifier: MPL-2.0

// Package export orchestrates one document export end to end: decide
// the output location (with a documented fallback when the configured
// directory cannot be created), load sidecar metadata, resolve the
// converter executable, run the invocation, and hand back the
// classified result together with structured diagnostics.
//
// The package returns diagnostics as values instead of printing them;
// rendering policy belongs to the caller.
package export
