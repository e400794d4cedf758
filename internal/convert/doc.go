// SPDX-License-Identifier: MPL-2.0

// Package convert builds and runs the external converter invocation for
// one export job. It materializes the document text into a transient
// input file, assembles a platform-correct command line around the
// resolved executable, forwards the caller's environment, and
// classifies the process outcome (success, tool-not-found,
// engine-missing, other-failure).
//
// The package never locates the converter itself; callers resolve the
// executable first (see internal/resolver) and hand the verified path
// in.
package convert
