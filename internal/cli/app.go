// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"io"
	"os"

	"github.com/biglinux/libchildenv/internal/config"
	"github.com/biglinux/libchildenv/pkg/intercept"
)

type (
	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// ExecFunc replaces the current process image with file, located through
	// the genuine implementation's own path search. On success it does not
	// return.
	ExecFunc func(file string, argv []string) error

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: all Cobra command handlers receive an App
	// reference and reach the process boundary (environment, exec, stdio)
	// through its fields, never through the os package directly.
	App struct {
		Config ConfigProvider

		// Environ returns the ambient environment as "NAME=VALUE" strings.
		Environ func() []string

		// LookupEnv reads one ambient variable.
		LookupEnv func(key string) (string, bool)

		// Setenv writes one ambient variable. The run command uses it to
		// export resolved rules before handing off to the interceptor.
		Setenv func(key, value string) error

		// Exec replaces the process image under the rewritten environment.
		Exec ExecFunc

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests supply
	// fakes to keep the real process environment and exec syscall out of
	// reach.
	Dependencies struct {
		Config    ConfigProvider
		Environ   func() []string
		LookupEnv func(key string) (string, bool)
		Setenv    func(key, value string) error
		Exec      ExecFunc
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Environ == nil {
		deps.Environ = os.Environ
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}
	if deps.Setenv == nil {
		deps.Setenv = os.Setenv
	}
	if deps.Exec == nil {
		deps.Exec = defaultExec
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		Config:    deps.Config,
		Environ:   deps.Environ,
		LookupEnv: deps.LookupEnv,
		Setenv:    deps.Setenv,
		Exec:      deps.Exec,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

// defaultExec hands the call to a fresh interceptor with ambient rule
// discovery: rules come from CHILD_ENV_RULES, the environment from the
// process itself. The run command exports flag- or profile-supplied rules
// into the process environment first, so one code path serves every origin.
func defaultExec(file string, argv []string) error {
	var ic intercept.Interceptor
	return ic.Execvp(file, argv)
}
