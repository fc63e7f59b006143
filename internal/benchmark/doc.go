// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides comprehensive benchmarks for PGO profile generation.
// These benchmarks cover all hot paths in the childenv codebase:
//   - Rule string parsing and formatting
//   - Environment rewriting and explain reporting
//   - Rule source resolution on the exec path
//   - Configuration loading and profile lookup
//   - Embedded shell script execution
//
// To generate a PGO profile, run:
//
//	go test -run='^$' -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
