// SPDX-License-Identifier: MPL-2.0

package childenv

import "strings"

// Split divides an environment entry into name and value at the first '='.
// An entry without '=' is all name: Split("TERM") returns ("TERM", "", false).
func Split(entry string) (name, value string, hasValue bool) {
	return strings.Cut(entry, "=")
}

// Clone returns an independent copy of env: a fresh slice whose strings share
// no backing storage with the input. A nil env yields an empty, non-nil
// slice, so callers always get an owned result they can append to or hand
// off without aliasing the source.
func Clone(env []string) []string {
	out := make([]string, 0, len(env))
	for _, entry := range env {
		out = append(out, strings.Clone(entry))
	}
	return out
}

// Rewrite builds a new environment from original according to rules.
//
// Entries whose name matches no rule are copied through in their original
// order. An entry is claimed by the first rule, in parse order, whose name
// equals the entry's name, whatever that rule's kind, and a claimed entry is
// excluded from the copy. After the copy pass, every set rule appends its
// "Name=Value" entry, again in parse order, whether or not it claimed
// anything. A set rule therefore overwrites when its name was present and
// adds when it was not, and an unset rule followed by a set rule of the same
// name still ends with the variable set.
//
// Two quirks follow from the unconditional append:
//   - duplicate set rules each contribute an entry: rules "FOO=a,FOO=b"
//     against an environment containing FOO produce both FOO=a and FOO=b,
//     and the result is never deduplicated;
//   - a nil original means there is no environment to rewrite, so the result
//     is an empty owned slice with no rules applied, not a synthesized
//     environment.
//
// The result is always fully independent of both inputs: fresh slice, fresh
// strings, built anew on every call.
func Rewrite(original []string, rules []Rule) []string {
	if original == nil {
		return []string{}
	}
	out := make([]string, 0, len(original)+len(rules))
	for _, entry := range original {
		if matchRule(entry, rules) < 0 {
			out = append(out, strings.Clone(entry))
		}
	}
	for _, r := range rules {
		if r.Kind == RuleSet {
			out = append(out, r.Name+"="+r.Value)
		}
	}
	return out
}

// matchRule returns the index of the first rule claiming entry, or -1.
func matchRule(entry string, rules []Rule) int {
	name, _, _ := strings.Cut(entry, "=")
	for i, r := range rules {
		if r.Name == name {
			return i
		}
	}
	return -1
}
