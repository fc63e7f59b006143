// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/biglinux/libchildenv/internal/issue"
	"github.com/biglinux/libchildenv/internal/shell"
	"github.com/biglinux/libchildenv/pkg/childenv"

	"github.com/spf13/cobra"
)

// newShellCommand creates the `childenv shell` command.
func newShellCommand(app *App) *cobra.Command {
	var (
		flags  ruleFlags
		script string
	)

	shellCmd := &cobra.Command{
		Use:   "shell [flags] [SCRIPT_FILE [ARGS...]]",
		Short: "Run a POSIX shell script under the rewritten environment",
		Long: `Run a POSIX shell script with the rewritten environment, through the
embedded interpreter. No host shell is involved, and the parent's own
environment stays untouched.

The script comes from -c, from SCRIPT_FILE, or from standard input when
neither is given. Remaining arguments become the script's positional
parameters. External commands the script launches are resolved through
the PATH of the rewritten environment.`,
		Example: `  childenv shell -c 'echo "$HOME"'
  childenv shell --rules "DEBUG=1" -c 'env | sort'
  childenv shell deploy.sh staging
  echo 'printf "%s\n" "$PATH"' | childenv shell`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.explicitSet = cmd.Flags().Changed("rules")
			return runShell(cmd, app, flags, script, args)
		},
	}

	shellCmd.Flags().StringVarP(&flags.rules, "rules", "r", "", "rule string to apply (overrides profiles and "+childenv.RulesVar+")")
	shellCmd.Flags().StringVarP(&flags.profile, "profile", "p", "", "named rule profile from the configuration")
	shellCmd.Flags().StringVarP(&script, "command", "c", "", "script source to run instead of reading a file")

	return shellCmd
}

func runShell(cmd *cobra.Command, app *App, flags ruleFlags, script string, args []string) error {
	cmd.SilenceUsage = true

	resolved, err := app.resolveRules(cmd.Context(), flags)
	if err != nil {
		app.renderResolveIssue(err)
		cmd.SilenceErrors = true
		return &ExitError{Code: 1, Err: err}
	}

	src, name, scriptArgs, err := resolveScript(app, script, args)
	if err != nil {
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+err.Error())
		cmd.SilenceErrors = true
		return &ExitError{Code: 1, Err: err}
	}

	env := rewriteForChild(app.Environ(), resolved)

	logger.Debug("running script",
		"source", name,
		"rules", resolved.src,
		"origin", resolved.describe())

	code, err := shell.Run(cmd.Context(), src, name, shell.Options{
		Env:    env,
		Args:   scriptArgs,
		Stdin:  app.stdin,
		Stdout: app.stdout,
		Stderr: app.stderr,
	})
	if err != nil {
		app.renderIssue(issue.ScriptFailedId)
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+err.Error())
		cmd.SilenceErrors = true
		return &ExitError{Code: code, Err: err}
	}
	if code != 0 {
		// The script already reported whatever went wrong on its own streams.
		cmd.SilenceErrors = true
		return &ExitError{Code: code}
	}

	return nil
}

// resolveScript picks the script source: -c wins, then a script file, then
// standard input. It returns the source text, a name for error messages, and
// the positional parameters left for the script.
func resolveScript(app *App, script string, args []string) (src, name string, scriptArgs []string, err error) {
	if script != "" {
		return script, "-c", args, nil
	}
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", nil, fmt.Errorf("failed to read script file: %w", err)
		}
		return string(data), args[0], args[1:], nil
	}
	data, err := io.ReadAll(app.stdin)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read script from stdin: %w", err)
	}
	return string(data), "stdin", nil, nil
}

// rewriteForChild builds the child environment for an in-process run. Rules
// chosen by the invocation are first written into the base environment as a
// CHILD_ENV_RULES entry (the same export run performs through Setenv) so
// the script's descendants see them; then the rules themselves are applied.
func rewriteForChild(base []string, resolved resolvedRules) []string {
	if resolved.explicit() {
		export := []childenv.Rule{{Name: childenv.RulesVar, Value: resolved.src, Kind: childenv.RuleSet}}
		base = childenv.Rewrite(base, export)
	}
	return childenv.Rewrite(base, childenv.ParseRules(resolved.src))
}
