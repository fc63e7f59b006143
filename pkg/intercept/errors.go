// SPDX-License-Identifier: MPL-2.0

package intercept

import (
	"errors"
	"fmt"
)

var (
	// ErrRewriteFailed is the sentinel error wrapped by RewriteError. Its
	// presence in an error chain means the genuine implementation was never
	// invoked: a call that cannot build or install its rewritten environment
	// fails closed instead of exec'ing with an unfiltered one.
	ErrRewriteFailed = errors.New("child environment rewrite failed")

	// ErrUnsupported reports that an entry point has no genuine
	// implementation to delegate to, either because the platform lacks exec
	// semantics or because a custom SymbolTable left the entry nil.
	ErrUnsupported = errors.New("exec entry point unsupported")
)

// RewriteError reports a failed environment rewrite for one intercepted call.
type RewriteError struct {
	// Op is the entry point that failed, e.g. "execvp".
	Op string

	// Cause is the underlying failure, if any.
	Cause error
}

// Error implements the error interface.
func (e *RewriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: child environment rewrite failed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: child environment rewrite failed", e.Op)
}

// Unwrap returns ErrRewriteFailed so callers can use errors.Is for programmatic detection.
func (e *RewriteError) Unwrap() error { return ErrRewriteFailed }
