// SPDX-License-Identifier: MPL-2.0

//go:build windows

package intercept

import (
	"fmt"
	"sync"
)

// platformTable reports ErrUnsupported for every entry point: Windows has no
// exec semantics, a process image cannot be replaced in place.
var platformTable = sync.OnceValue(func() *SymbolTable {
	explicit := func(name string) ExecFunc {
		return func(string, []string, []string) error {
			return fmt.Errorf("%s: %w", name, ErrUnsupported)
		}
	}
	ambient := func(name string) AmbientExecFunc {
		return func(string, []string) error {
			return fmt.Errorf("%s: %w", name, ErrUnsupported)
		}
	}
	return &SymbolTable{
		Execve:  explicit("execve"),
		Execvpe: explicit("execvpe"),
		Execv:   ambient("execv"),
		Execvp:  ambient("execvp"),
	}
})
