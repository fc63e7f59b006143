// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"

	"github.com/biglinux/libchildenv/pkg/childenv"

	"github.com/spf13/cobra"
)

// newPrintCommand creates the `childenv print` command.
func newPrintCommand(app *App) *cobra.Command {
	var (
		flags ruleFlags
		diff  bool
	)

	printCmd := &cobra.Command{
		Use:   "print [flags]",
		Short: "Print the environment a child process would receive",
		Long: `Print the rewrite of the current environment under the rules in effect,
one NAME=VALUE entry per line, in the order a child would receive them:
entries copied through first, entries contributed by set rules last.

With --diff, show the rewrite as a change set instead: dropped entries
prefixed with "-", appended entries with "+", kept entries indented.`,
		Example: `  childenv print
  childenv print --diff
  childenv print --rules "HOME,TMPDIR=/tmp" --diff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.explicitSet = cmd.Flags().Changed("rules")
			return runPrint(cmd, app, flags, diff)
		},
	}

	printCmd.Flags().StringVarP(&flags.rules, "rules", "r", "", "rule string to apply (overrides profiles and "+childenv.RulesVar+")")
	printCmd.Flags().StringVarP(&flags.profile, "profile", "p", "", "named rule profile from the configuration")
	printCmd.Flags().BoolVar(&diff, "diff", false, "show kept, dropped, and appended entries")

	return printCmd
}

func runPrint(cmd *cobra.Command, app *App, flags ruleFlags, diff bool) error {
	cmd.SilenceUsage = true

	resolved, err := app.resolveRules(cmd.Context(), flags)
	if err != nil {
		app.renderResolveIssue(err)
		cmd.SilenceErrors = true
		return &ExitError{Code: 1, Err: err}
	}

	env := app.Environ()
	report := childenv.Explain(env, childenv.ParseRules(resolved.src))

	if !diff {
		for _, entry := range report.Result() {
			fmt.Fprintln(app.stdout, entry)
		}
		return nil
	}

	printDiff(app, env, resolved, report)
	return nil
}

// printDiff renders the explain report as a change set against the original
// entry order. Kept and Dropped are order-preserving partitions of env, so a
// single pass with two cursors reassembles the interleaving; identical text
// can never sit in both partitions because identical entries share a name and
// therefore a match outcome.
func printDiff(app *App, env []string, resolved resolvedRules, report childenv.Report) {
	ki, di := 0, 0
	for _, entry := range env {
		switch {
		case ki < len(report.Kept) && report.Kept[ki] == entry:
			fmt.Fprintln(app.stdout, diffKeepStyle.Render("  "+entry))
			ki++
		case di < len(report.Dropped) && report.Dropped[di] == entry:
			fmt.Fprintln(app.stdout, diffDropStyle.Render("- "+entry))
			di++
		}
	}
	for _, entry := range report.Appended {
		fmt.Fprintln(app.stdout, diffAddStyle.Render("+ "+entry))
	}

	fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf(
		"%d kept, %d dropped, %d appended (%s)",
		len(report.Kept), len(report.Dropped), len(report.Appended), resolved.describe())))
}
