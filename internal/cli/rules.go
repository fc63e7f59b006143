// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/biglinux/libchildenv/pkg/childenv"

	"github.com/spf13/cobra"
)

// newRulesCommand creates the `childenv rules` command.
func newRulesCommand(app *App) *cobra.Command {
	var (
		flags ruleFlags
		check bool
	)

	rulesCmd := &cobra.Command{
		Use:   "rules [flags]",
		Short: "Show the rewrite rules in effect",
		Long: `Show the parsed rewrite rules in effect for this invocation, in the
order they claim environment entries.

With --check, audit the rules for likely mistakes instead: duplicate
names (only the first rule naming an entry ever matches, but every set
rule still appends), empty names, and unset rules that match nothing in
the current environment. Findings exit with status 1.`,
		Example: `  childenv rules
  childenv rules --check
  childenv rules --profile hardened --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.explicitSet = cmd.Flags().Changed("rules")
			return runRules(cmd, app, flags, check)
		},
	}

	rulesCmd.Flags().StringVarP(&flags.rules, "rules", "r", "", "rule string to apply (overrides profiles and "+childenv.RulesVar+")")
	rulesCmd.Flags().StringVarP(&flags.profile, "profile", "p", "", "named rule profile from the configuration")
	rulesCmd.Flags().BoolVar(&check, "check", false, "audit the rules and exit non-zero on findings")

	return rulesCmd
}

func runRules(cmd *cobra.Command, app *App, flags ruleFlags, check bool) error {
	cmd.SilenceUsage = true

	resolved, err := app.resolveRules(cmd.Context(), flags)
	if err != nil {
		app.renderResolveIssue(err)
		cmd.SilenceErrors = true
		return &ExitError{Code: 1, Err: err}
	}

	if resolved.origin == originNone {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("No rules in effect: child environments pass through as untouched copies."))
		return nil
	}

	rules := childenv.ParseRules(resolved.src)
	if len(rules) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf("Empty rule list (%s): child environments pass through as untouched copies.", resolved.describe())))
		return nil
	}

	if check {
		return checkRules(cmd, app, rules)
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Rules in effect")+SubtitleStyle.Render(" ("+resolved.describe()+")"))
	for i, r := range rules {
		switch r.Kind {
		case childenv.RuleSet:
			fmt.Fprintf(app.stdout, "  %2d. set   %s=%s\n", i+1, CmdStyle.Render(r.Name), SuccessStyle.Render(r.Value))
		default:
			fmt.Fprintf(app.stdout, "  %2d. unset %s\n", i+1, CmdStyle.Render(r.Name))
		}
	}

	return nil
}

// checkRules prints audit findings and fails the command when there are any.
func checkRules(cmd *cobra.Command, app *App, rules []childenv.Rule) error {
	findings := auditRules(rules, app.Environ())
	if len(findings) == 0 {
		fmt.Fprintf(app.stdout, "%s no issues found in %d rule(s)\n", SuccessStyle.Render("✓"), len(rules))
		return nil
	}

	for _, finding := range findings {
		fmt.Fprintln(app.stdout, WarningStyle.Render("warning: ")+finding)
	}
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: fmt.Errorf("rule audit: %d finding(s)", len(findings))}
}

// auditRules inspects a parsed rule list against an environment and reports
// likely mistakes. Rules are numbered from 1, matching the listing view.
func auditRules(rules []childenv.Rule, env []string) []string {
	var findings []string

	// A duplicate or malformed rule is excluded from the match audit below;
	// reporting it twice would just be noise.
	flagged := make([]bool, len(rules))

	firstByName := make(map[string]int, len(rules))
	for i, r := range rules {
		first, seen := firstByName[r.Name]
		if !seen {
			firstByName[r.Name] = i
			continue
		}
		flagged[i] = true
		switch {
		case r.Kind == childenv.RuleSet && rules[first].Kind == childenv.RuleSet:
			findings = append(findings, fmt.Sprintf(
				"rules %d and %d both set %s: the child will see duplicate %s entries",
				first+1, i+1, r.Name, r.Name))
		case r.Kind == childenv.RuleSet:
			findings = append(findings, fmt.Sprintf(
				"rule %d repeats the name of rule %d: it never claims an entry, but still appends %s=%s",
				i+1, first+1, r.Name, r.Value))
		default:
			findings = append(findings, fmt.Sprintf(
				"rule %d (%s) repeats the name of rule %d and has no effect",
				i+1, r.Name, first+1))
		}
	}

	for i, r := range rules {
		if r.Name == "" {
			findings = append(findings, fmt.Sprintf(
				"rule %d sets a variable with an empty name (token %q)", i+1, r.String()))
			flagged[i] = true
			continue
		}
		if strings.TrimSpace(r.Name) != r.Name {
			findings = append(findings, fmt.Sprintf(
				"rule %d (%q) has surrounding whitespace in its name: names match byte-for-byte",
				i+1, r.Name))
			flagged[i] = true
		}
	}

	report := childenv.Explain(env, rules)
	for i, r := range rules {
		if flagged[i] || r.Kind != childenv.RuleUnset {
			continue
		}
		if !report.Matched[i] {
			findings = append(findings, fmt.Sprintf(
				"rule %d (%s) matches nothing in the current environment", i+1, r.Name))
		}
	}

	return findings
}
