// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines error types that include remediation steps and
// Markdown-formatted guidance. Export and resolution failures carry an
// explanation of what was attempted plus the exact command or settings
// field that fixes the situation, so users are never left with a bare
// exit status.
package issue
