// SPDX-License-Identifier: MPL-2.0

// Package resolver locates the external converter binary on the host.
//
// Resolution turns a user-supplied hint (a bare name or a path) into an
// absolute, verified-executable path by trying increasingly expensive
// strategies in a fixed order: the hint itself, the hint relative to the
// working directory, PATH plus well-known install directories, shell
// profile introspection and mdfind (macOS), and finally which/where.
// The first success wins; a path is never returned without passing the
// executability check. Every strategy-level failure is swallowed and
// logged, only the aggregate ToolNotFoundError surfaces to callers.
package resolver
