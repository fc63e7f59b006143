// SPDX-License-Identifier: MPL-2.0

package intercept

import (
	"fmt"
	"os"
	"sync"

	"github.com/biglinux/libchildenv/pkg/childenv"
)

type (
	// ExecFunc is the shape of a genuine explicit-environment entry point:
	// replace the current process image with the program at path, passing
	// argv and envv through verbatim. On success it does not return.
	ExecFunc func(path string, argv, envv []string) error

	// AmbientExecFunc is the shape of a genuine ambient entry point: it
	// reads the process environment itself instead of taking one.
	AmbientExecFunc func(path string, argv []string) error

	// SymbolTable holds the genuine exec-family implementations an
	// Interceptor delegates to. The search-path entries (Execvpe, Execvp)
	// own their executable lookup; the interception layer substitutes
	// environments, never resolves paths.
	SymbolTable struct {
		Execve  ExecFunc
		Execvpe ExecFunc
		Execv   AmbientExecFunc
		Execvp  AmbientExecFunc
	}

	// Interceptor rewrites child environments for the exec family before
	// delegating to the genuine implementations.
	//
	// The zero value is ready to use: rules come from the CHILD_ENV_RULES
	// variable, the ambient environment from os.Environ, and the delegates
	// from the platform table. Each delegate is bound on the first call
	// that needs it and reused for the Interceptor's lifetime.
	Interceptor struct {
		// Source supplies the rule string. When nil, EnvSource{} is used.
		Source RuleSource

		// Environ returns the ambient environment as "NAME=VALUE" strings.
		// When nil, os.Environ is used.
		Environ func() []string

		// Table supplies the genuine implementations. When nil, the
		// platform table is used. Each entry is consulted once: replacing
		// the table after a delegate is bound does not rebind it.
		Table *SymbolTable

		// setenv and clearenv back the ambient swap. Tests replace them,
		// together with Environ, to keep the real process environment out
		// of reach.
		setenv   func(key, value string) error
		clearenv func()

		bindOnce [numSymbols]sync.Once
		bound    SymbolTable
	}
)

// symbol indexes the per-entry-point binding cells.
type symbol int

const (
	symExecve symbol = iota
	symExecvpe
	symExecv
	symExecvp
	numSymbols
)

// Execve replaces the current process image with the program at path,
// passing argv and the rewrite of envv. A nil envv is treated as an absent
// environment: the child receives an empty one, rules not applied.
func (ic *Interceptor) Execve(path string, argv, envv []string) error {
	fn := ic.bind(symExecve).Execve
	if fn == nil {
		return fmt.Errorf("execve: %w", ErrUnsupported)
	}
	env, err := ic.rewritten("execve", envv)
	if err != nil {
		return err
	}
	return fn(path, argv, env)
}

// Execvpe is Execve with executable search: file is located by the genuine
// implementation's own path lookup.
func (ic *Interceptor) Execvpe(file string, argv, envv []string) error {
	fn := ic.bind(symExecvpe).Execvpe
	if fn == nil {
		return fmt.Errorf("execvpe: %w", ErrUnsupported)
	}
	env, err := ic.rewritten("execvpe", envv)
	if err != nil {
		return err
	}
	return fn(file, argv, env)
}

// Execv replaces the current process image with the program at path, passing
// argv and the rewrite of the ambient environment. The rewritten environment
// is installed into the process for the delegate to observe; see the package
// comment for the concurrency precondition.
func (ic *Interceptor) Execv(path string, argv []string) error {
	fn := ic.bind(symExecv).Execv
	if fn == nil {
		return fmt.Errorf("execv: %w", ErrUnsupported)
	}
	return ic.invokeAmbient("execv", fn, path, argv)
}

// Execvp is Execv with executable search. The genuine implementation's
// lookup consults the PATH of the installed (rewritten) environment.
func (ic *Interceptor) Execvp(file string, argv []string) error {
	fn := ic.bind(symExecvp).Execvp
	if fn == nil {
		return fmt.Errorf("execvp: %w", ErrUnsupported)
	}
	return ic.invokeAmbient("execvp", fn, file, argv)
}

// invokeAmbient runs the shared ambient-variant choreography: rewrite the
// current process environment, install the result, and hand control to fn.
// If fn returns, the previous environment is restored before its error is
// propagated unchanged.
func (ic *Interceptor) invokeAmbient(op string, fn AmbientExecFunc, name string, argv []string) error {
	snapshot := ic.ambientEnv()
	env, err := ic.rewritten(op, snapshot)
	if err != nil {
		return err
	}
	restore, err := ic.installAmbient(snapshot, env)
	if err != nil {
		return &RewriteError{Op: op, Cause: err}
	}
	defer restore()
	return fn(name, argv)
}

// rewritten builds the child environment for one intercepted call. An absent
// rule source degrades to a defensive copy, so the result is always an owned
// slice. A source failure aborts the call before the genuine implementation
// is reached.
func (ic *Interceptor) rewritten(op string, original []string) ([]string, error) {
	src, ok, err := ic.ruleSource().Rules()
	if err != nil {
		return nil, &RewriteError{Op: op, Cause: err}
	}
	if !ok {
		return childenv.Clone(original), nil
	}
	return childenv.Rewrite(original, childenv.ParseRules(src)), nil
}

// bind resolves the genuine implementation for sym on first use and returns
// the bound table. Binding happens exactly once per symbol, even under
// concurrent first calls; later changes to Table do not rebind.
func (ic *Interceptor) bind(sym symbol) *SymbolTable {
	ic.bindOnce[sym].Do(func() {
		t := ic.table()
		switch sym {
		case symExecve:
			ic.bound.Execve = t.Execve
		case symExecvpe:
			ic.bound.Execvpe = t.Execvpe
		case symExecv:
			ic.bound.Execv = t.Execv
		case symExecvp:
			ic.bound.Execvp = t.Execvp
		}
	})
	return &ic.bound
}

func (ic *Interceptor) table() *SymbolTable {
	if ic.Table != nil {
		return ic.Table
	}
	return platformTable()
}

func (ic *Interceptor) ruleSource() RuleSource {
	if ic.Source != nil {
		return ic.Source
	}
	return EnvSource{}
}

func (ic *Interceptor) ambientEnv() []string {
	if ic.Environ != nil {
		return ic.Environ()
	}
	return os.Environ()
}
