// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE helpers for packages that validate
// user files against an embedded schema.
//
// Its main job is error presentation: CUE reports validation failures as
// structured error lists with field paths, and FormatError flattens those
// into single messages of the form
//
//	config.cue: export.format: conflicting values
//
// so callers can wrap them without re-walking the CUE error tree. The
// package also carries the shared file size guard applied before any CUE
// compilation.
package cueutil
