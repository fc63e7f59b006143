// SPDX-License-Identifier: MPL-2.0

package childenv

import "strings"

// Report describes how a rule list transforms an environment. It exists for
// the diagnostic surfaces (dry-run and rule-audit views); Rewrite itself
// tracks nothing while building.
type Report struct {
	// Kept holds the entries copied through unchanged, in original order.
	Kept []string

	// Dropped holds the entries claimed by some rule and excluded from the
	// copy pass, in original order.
	Dropped []string

	// Appended holds the "Name=Value" entries contributed by set rules, in
	// parse order, duplicates included.
	Appended []string

	// Matched is parallel to the rule list: Matched[i] reports whether rule i
	// claimed at least one entry. An entry is claimed by the first matching
	// rule only, so a duplicate-name rule after the first never matches.
	Matched []bool
}

// Result assembles the rewritten environment the report describes. It equals
// Rewrite(original, rules) for the inputs Explain was given.
func (r Report) Result() []string {
	out := make([]string, 0, len(r.Kept)+len(r.Appended))
	out = append(out, r.Kept...)
	out = append(out, r.Appended...)
	return out
}

// Explain reports what Rewrite(original, rules) produces, split into the
// kept, dropped, and appended entries, without the caller having to diff the
// result against the input. The slices in the returned report are owned by
// it and share no storage with original.
//
// A nil original reports everything empty, matching Rewrite's treatment of an
// absent environment.
func Explain(original []string, rules []Rule) Report {
	rep := Report{Matched: make([]bool, len(rules))}
	if original == nil {
		return rep
	}
	for _, entry := range original {
		if i := matchRule(entry, rules); i >= 0 {
			rep.Matched[i] = true
			rep.Dropped = append(rep.Dropped, strings.Clone(entry))
		} else {
			rep.Kept = append(rep.Kept, strings.Clone(entry))
		}
	}
	for _, r := range rules {
		if r.Kind == RuleSet {
			rep.Appended = append(rep.Appended, r.Name+"="+r.Value)
		}
	}
	return rep
}
