// SPDX-License-Identifier: MPL-2.0

// Package intercept funnels the exec family of process-replacement calls
// through rule-driven child-environment rewriting.
//
// Every entry point of the family has a replacement here with the familiar
// shape: Execve, Execvpe, Execv, and Execvp take argument vectors; Execl,
// Execlp, and Execle take variadic arguments. Each call obtains the rule
// string from its RuleSource (the CHILD_ENV_RULES variable by default),
// rewrites the environment the child would have received, and hands control
// to the genuine platform implementation. On success the call never returns,
// because the process image has been replaced; on failure the process is
// left exactly as it was.
//
// Two behaviors are load-bearing:
//
//   - Fail-closed: when the rewritten environment cannot be built or
//     installed, the genuine implementation is not invoked at all and the
//     call reports an error wrapping ErrRewriteFailed. A child never starts
//     with an unfiltered environment.
//   - Ambient variants (Execv, Execvp, Execl, Execlp) temporarily install
//     the rewritten environment into the calling process so the genuine
//     implementation observes it, and restore the previous state if the
//     call returns. The swap is process-global, so ambient variants must
//     not be invoked concurrently from multiple goroutines.
//
// Package-level functions share one process-wide Interceptor. Construct an
// Interceptor directly to inject a different rule source, environment, or
// delegate table.
package intercept
