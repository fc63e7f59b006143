// SPDX-License-Identifier: MPL-2.0

package childenv

import "strings"

// RulesVar is the environment variable conventionally carrying the rewrite
// rule string. Processes that funnel their exec calls through this library
// inherit it like any other variable, which is what lets a parent configure
// the environment of its grandchildren.
const RulesVar = "CHILD_ENV_RULES"

type (
	// RuleKind distinguishes the two rule forms.
	RuleKind int

	// Rule is one declarative instruction against a single environment entry
	// name. Parse order matters: during a rewrite, the first rule whose name
	// equals an entry's name claims that entry.
	Rule struct {
		// Name is compared byte-for-byte against entry names (the part of an
		// entry before its first '='). Duplicate names across rules are
		// legal; see Rewrite for how they play out.
		Name string

		// Value is the replacement value. Only meaningful for RuleSet.
		Value string

		// Kind selects between unsetting and setting.
		Kind RuleKind
	}
)

const (
	// RuleUnset removes every entry whose name equals Rule.Name.
	RuleUnset RuleKind = iota

	// RuleSet removes every entry whose name equals Rule.Name, then appends
	// one "Name=Value" entry to the result.
	RuleSet
)

// String renders the rule in its source form: "NAME" or "NAME=VALUE".
func (r Rule) String() string {
	if r.Kind == RuleSet {
		return r.Name + "=" + r.Value
	}
	return r.Name
}

// ParseRules parses a comma-separated rule string into an ordered rule list.
//
// Each non-empty token is one rule. The first '=' in a token divides name
// from value and yields a set rule; a token without '=' is an unset rule for
// the whole token. Empty tokens, produced by consecutive, leading, or
// trailing commas, are skipped.
//
// Parsing never fails and performs no validation beyond token splitting:
// names are taken verbatim (whitespace included), values may contain further
// '=' characters, and duplicate names are preserved in order. There is no
// escaping, so a value cannot contain ','.
func ParseRules(src string) []Rule {
	if src == "" {
		return nil
	}
	tokens := strings.Split(src, ",")
	rules := make([]Rule, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		name, value, isSet := strings.Cut(tok, "=")
		if isSet {
			rules = append(rules, Rule{Name: name, Value: value, Kind: RuleSet})
		} else {
			rules = append(rules, Rule{Name: tok, Kind: RuleUnset})
		}
	}
	return rules
}

// FormatRules renders a rule list back into the comma-separated source form
// accepted by ParseRules. Round-tripping through ParseRules is lossless for
// any list FormatRules can produce.
func FormatRules(rules []Rule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}
