// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// HasExec reports whether the current platform can replace a process image
// in place. Windows has no exec(2) semantics: a "replacement" there is
// always a new process, so the interception layer refuses to pretend
// otherwise.
func HasExec() bool {
	return runtime.GOOS != Windows
}
