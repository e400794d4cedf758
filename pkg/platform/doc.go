// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes OS identity constants, the Facts snapshot of
// the host environment (search paths, home directory, default shell)
// that resolution and invocation consume, and Windows filename rules
// that transient-file naming must respect.
package platform
