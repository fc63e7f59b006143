// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes platform-specific concerns shared across the
// repository: runtime.GOOS string constants and the distinction between
// systems with process-image-replacement semantics (the exec family) and
// systems without them.
package platform
