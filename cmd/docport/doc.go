// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for docport.
//
// This package implements the Cobra command hierarchy for the docport CLI:
// the root command, the export pipeline with its watch mode, the doctor
// resolution walkthrough, and configuration management.
package cmd
