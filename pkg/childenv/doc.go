// SPDX-License-Identifier: MPL-2.0

// Package childenv builds controlled child-process environments from
// declarative rewrite rules.
//
// Rules arrive as a comma-separated string, conventionally inherited through
// the CHILD_ENV_RULES environment variable:
//
//	SECRET            unset: drop every entry named SECRET
//	PATH=/usr/bin     set:   drop every entry named PATH, then append PATH=/usr/bin
//
// Rewrite applies a rule list to an environment in "NAME=VALUE" slice form
// and returns a fully independent result: a fresh slice backed by fresh
// strings, safe to retain or hand to another process image regardless of what
// happens to the inputs afterwards. Explain produces the matching/diff view of
// the same transformation for dry-run and audit output.
//
// The package is pure: no I/O, no process state, no logging. The interception
// layer that feeds real exec calls through these functions lives in
// pkg/intercept.
package childenv
