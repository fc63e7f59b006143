// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/biglinux/libchildenv/internal/config"
)

type (
	// fakeConfigProvider returns a fixed configuration or error, recording
	// nothing. It stands in for the file-backed provider in command tests.
	fakeConfigProvider struct {
		cfg *config.Config
		err error
	}

	// execCall records one Exec invocation.
	execCall struct {
		file string
		argv []string
	}

	// testEnv binds an App to buffers and recorders so command tests can
	// assert on output and process-boundary effects without touching the
	// real environment.
	testEnv struct {
		app    *App
		stdout *bytes.Buffer
		stderr *bytes.Buffer

		execCalls []execCall
		execErr   error

		setenvCalls map[string]string

		environ []string
	}
)

func (p *fakeConfigProvider) Load(_ context.Context, _ config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.cfg != nil {
		return p.cfg, nil
	}
	return config.DefaultConfig(), nil
}

// newTestEnv builds an App over buffers and fakes. environ is the ambient
// environment the app observes; LookupEnv is derived from it.
func newTestEnv(environ []string, provider ConfigProvider) *testEnv {
	te := &testEnv{
		stdout:      &bytes.Buffer{},
		stderr:      &bytes.Buffer{},
		setenvCalls: map[string]string{},
		environ:     environ,
	}
	if provider == nil {
		provider = &fakeConfigProvider{}
	}

	te.app = NewApp(Dependencies{
		Config:  provider,
		Environ: func() []string { return te.environ },
		LookupEnv: func(key string) (string, bool) {
			for _, entry := range te.environ {
				if name, value, ok := strings.Cut(entry, "="); ok && name == key {
					return value, true
				}
			}
			return "", false
		},
		Setenv: func(key, value string) error {
			te.setenvCalls[key] = value
			te.environ = append(te.environ, key+"="+value)
			return nil
		},
		Exec: func(file string, argv []string) error {
			te.execCalls = append(te.execCalls, execCall{file: file, argv: argv})
			return te.execErr
		},
		Stdin:  strings.NewReader(""),
		Stdout: te.stdout,
		Stderr: te.stderr,
	})

	return te
}

// execute runs the command tree against the test env, capturing cobra's own
// output alongside the app's.
func (te *testEnv) execute(args ...string) error {
	root := newRootCommand(te.app)
	root.SetArgs(args)
	root.SetOut(te.stdout)
	root.SetErr(te.stderr)
	return root.Execute()
}
