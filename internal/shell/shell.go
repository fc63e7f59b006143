// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biglinux/libchildenv/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Options configures a script run.
type Options struct {
	// Env is the complete environment visible to the script, in "NAME=value"
	// form. nil means an empty environment; the host environment is never
	// inherited implicitly.
	Env []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Args become the script's positional parameters ($1, $2, ...).
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run parses and executes src with the embedded interpreter and returns the
// script's exit code. The name appears in parse error messages. External
// commands invoked by the script are resolved through the PATH of opts.Env,
// not the host's.
func Run(ctx context.Context, src, name string, opts Options) (types.ExitCode, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(src), name)
	if err != nil {
		return 1, fmt.Errorf("failed to parse script: %w", err)
	}

	runnerOpts := []interp.RunnerOption{
		interp.Dir(opts.Dir),
		interp.Env(expand.ListEnviron(opts.Env...)),
		interp.StdIO(opts.Stdin, opts.Stdout, opts.Stderr),
	}

	// Prepend "--" to signal end of options; without this, args like "-v" or
	// "--env=staging" are incorrectly interpreted as shell options by
	// interp.Params()
	if len(opts.Args) > 0 {
		params := append([]string{"--"}, opts.Args...)
		runnerOpts = append(runnerOpts, interp.Params(params...))
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return 1, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return types.ExitCode(exitStatus), nil
		}
		return 1, fmt.Errorf("script execution failed: %w", err)
	}

	return 0, nil
}

// Check parses src without executing it, reporting syntax errors. The name
// appears in error messages.
func Check(src, name string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(src), name); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}
