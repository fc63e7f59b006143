// SPDX-License-Identifier: MPL-2.0

//go:build unix

package intercept

import (
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sys/unix"
)

// platformTable binds the genuine exec-family implementations once per
// process. The search-path entries resolve the executable with
// exec.LookPath, which consults the PATH visible at call time, then replace
// the image with unix.Exec; ambient entries read os.Environ themselves.
var platformTable = sync.OnceValue(func() *SymbolTable {
	return &SymbolTable{
		Execve: func(path string, argv, envv []string) error {
			return unix.Exec(path, argv, envv)
		},
		Execvpe: func(file string, argv, envv []string) error {
			path, err := exec.LookPath(file)
			if err != nil {
				return err
			}
			return unix.Exec(path, argv, envv)
		},
		Execv: func(path string, argv []string) error {
			return unix.Exec(path, argv, os.Environ())
		},
		Execvp: func(file string, argv []string) error {
			path, err := exec.LookPath(file)
			if err != nil {
				return err
			}
			return unix.Exec(path, argv, os.Environ())
		},
	}
})
