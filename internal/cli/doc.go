// SPDX-License-Identifier: MPL-2.0

// Package cli contains all CLI commands for childenv.
//
// This package implements the Cobra command hierarchy for the childenv
// binary: the root command, the run/print/shell/rules execution surfaces,
// and the config and docs utilities. Command handlers delegate rule
// resolution and environment rewriting to pkg/childenv and pkg/intercept
// through the App composition root.
package cli
