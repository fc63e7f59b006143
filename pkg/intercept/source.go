// SPDX-License-Identifier: MPL-2.0

package intercept

import (
	"os"

	"github.com/biglinux/libchildenv/pkg/childenv"
)

type (
	// RuleSource supplies the rewrite rule string for an intercepted call.
	//
	// ok reports whether a source was present at all. Absent is not an
	// error: it selects defensive-copy mode, in which the child receives an
	// owned copy of the original environment with no rules applied. A
	// non-nil err aborts the intercepted call before the genuine
	// implementation is reached (fail-closed).
	RuleSource interface {
		Rules() (src string, ok bool, err error)
	}

	// EnvSource reads the rule string from a process environment variable,
	// childenv.RulesVar by default. It never fails: an unset variable
	// selects defensive-copy mode.
	EnvSource struct {
		// Var overrides the variable name. Empty means childenv.RulesVar.
		Var string

		// LookupEnv overrides the environment lookup.
		// When nil, os.LookupEnv is used.
		LookupEnv func(key string) (string, bool)
	}

	// StaticSource is a fixed rule string, always present.
	StaticSource string

	// SourceFunc adapts a function to the RuleSource interface.
	SourceFunc func() (string, bool, error)
)

// Rules implements RuleSource.
func (s EnvSource) Rules() (string, bool, error) {
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	name := s.Var
	if name == "" {
		name = childenv.RulesVar
	}
	src, ok := lookup(name)
	return src, ok, nil
}

// Rules implements RuleSource.
func (s StaticSource) Rules() (string, bool, error) { return string(s), true, nil }

// Rules implements RuleSource.
func (f SourceFunc) Rules() (string, bool, error) { return f() }
