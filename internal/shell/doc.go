// SPDX-License-Identifier: MPL-2.0

// Package shell executes POSIX shell scripts in-process through the embedded
// mvdan.cc/sh interpreter, without spawning a host shell.
//
// The interpreter receives its environment explicitly, which lets callers run
// scripts under a rewritten environment that the host shell never sees. Shell
// builtins (echo, printf, test, cd, ...) run inside the interpreter; external
// commands are looked up through the PATH of the provided environment.
package shell
