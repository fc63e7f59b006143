// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/biglinux/libchildenv/internal/config"
	"github.com/biglinux/libchildenv/internal/issue"
	"github.com/biglinux/libchildenv/pkg/childenv"
	"github.com/biglinux/libchildenv/pkg/intercept"
	"github.com/biglinux/libchildenv/pkg/platform"

	"github.com/spf13/cobra"
)

// Exit codes for exec failures, following the shell convention: 127 when the
// command cannot be found, 126 when it is found but cannot be executed.
const (
	exitCommandNotFound = 127
	exitCannotExecute   = 126
)

// newRunCommand creates the `childenv run` command.
func newRunCommand(app *App) *cobra.Command {
	var flags ruleFlags

	runCmd := &cobra.Command{
		Use:   "run [flags] -- COMMAND [ARGS...]",
		Short: "Replace the childenv process with a command under the rewritten environment",
		Long: `Replace the childenv process with COMMAND, rewriting the environment it
inherits according to the rules in effect.

The command is located through the genuine PATH search of the underlying
exec implementation. The resolved rule string is exported as ` + childenv.RulesVar + `
before the handoff, so processes COMMAND spawns see the same rules their
parent did, unless a rule removes the variable itself.

On success this command does not return: the childenv process becomes
COMMAND. Exit code 127 reports a command that could not be found, 126 one
that could not be executed.`,
		Example: `  childenv run -- env
  childenv run --rules "LD_PRELOAD,DEBUG=1" -- make test
  childenv run --profile hardened -- ./untrusted-tool`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.explicitSet = cmd.Flags().Changed("rules")
			return runRun(cmd, app, flags, args)
		},
	}

	runCmd.Flags().StringVarP(&flags.rules, "rules", "r", "", "rule string to apply (overrides profiles and "+childenv.RulesVar+")")
	runCmd.Flags().StringVarP(&flags.profile, "profile", "p", "", "named rule profile from the configuration")

	return runCmd
}

// runRun resolves the rules, exports them, and hands the process over to the
// interception layer. It only returns on failure.
func runRun(cmd *cobra.Command, app *App, flags ruleFlags, argv []string) error {
	cmd.SilenceUsage = true

	if !platform.HasExec() {
		app.renderIssue(issue.PlatformUnsupportedId)
		cmd.SilenceErrors = true
		return &ExitError{Code: 1, Err: intercept.ErrUnsupported}
	}

	resolved, err := app.resolveRules(cmd.Context(), flags)
	if err != nil {
		app.renderResolveIssue(err)
		cmd.SilenceErrors = true
		return &ExitError{Code: 1, Err: err}
	}

	// Export the rules the invocation chose so the child's own descendants
	// inherit them through the environment, exactly as an inherited variable
	// would propagate. Inherited rules are already there.
	if resolved.explicit() {
		if err := app.Setenv(childenv.RulesVar, resolved.src); err != nil {
			cmd.SilenceErrors = true
			return &ExitError{Code: 1, Err: fmt.Errorf("failed to export %s: %w", childenv.RulesVar, err)}
		}
	}

	logger.Debug("replacing process image",
		"command", argv[0],
		"rules", resolved.src,
		"origin", resolved.describe())

	// On success the genuine Exec never returns; a nil error can only come
	// from an injected test double.
	err = app.Exec(argv[0], argv)
	if err == nil {
		return nil
	}

	cmd.SilenceErrors = true
	switch {
	case errors.Is(err, exec.ErrNotFound):
		app.renderIssue(issue.CommandNotFoundId)
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+fmt.Sprintf("command not found: %s", argv[0]))
		return &ExitError{Code: exitCommandNotFound, Err: err}
	case errors.Is(err, intercept.ErrRewriteFailed):
		app.renderIssue(issue.RewriteFailedId)
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+err.Error())
		return &ExitError{Code: 1, Err: err}
	case errors.Is(err, intercept.ErrUnsupported):
		app.renderIssue(issue.PlatformUnsupportedId)
		return &ExitError{Code: 1, Err: err}
	default:
		app.renderIssue(issue.ExecFailedId)
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+fmt.Sprintf("failed to execute %s: %v", argv[0], err))
		return &ExitError{Code: exitCannotExecute, Err: err}
	}
}

// renderIssue writes the catalog entry for id to stderr. Rendering failures
// degrade to the raw markdown body; the diagnostic must reach the user either
// way.
func (a *App) renderIssue(id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		fmt.Fprintln(a.stderr, string(entry.MarkdownMsg()))
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// renderResolveIssue picks the catalog entry matching a rule resolution
// failure: unknown profile names get the profile card, everything else the
// config load card.
func (a *App) renderResolveIssue(err error) {
	if errors.Is(err, config.ErrUnknownProfile) {
		a.renderIssue(issue.UnknownProfileId)
	} else {
		a.renderIssue(issue.ConfigLoadFailedId)
	}
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
}
