// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/biglinux/libchildenv/internal/config"
	"github.com/biglinux/libchildenv/internal/issue"
	"github.com/biglinux/libchildenv/pkg/childenv"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// logger is the CLI-wide structured logger. Debug level is enabled by
	// --verbose or the config file's verbose setting.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "childenv",
	})
)

// newRootCommand builds the root command and its subcommand tree.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "childenv",
		Short: "Rewrite the environment your child processes inherit",
		Long: TitleStyle.Render("childenv") + SubtitleStyle.Render(" - Rewrite the environment your child processes inherit") + `

childenv applies declarative rewrite rules to the environment a command
receives, without touching the parent's own variables. Rules come from the
` + childenv.RulesVar + ` variable, the --rules flag, or a named profile in
the configuration file.

A rule string is a comma-separated list of rules: "NAME" removes a variable,
"NAME=VALUE" replaces or adds one. The first rule naming an entry claims it.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Pick rules:            export ` + childenv.RulesVar + `="LD_PRELOAD,DEBUG=1"
  2. Inspect the outcome:   childenv print --diff
  3. Launch under them:     childenv run -- make test

` + SubtitleStyle.Render("Examples:") + `
  childenv print --diff                  Preview the rewrite of the current environment
  childenv run -r "PATH=/usr/bin" -- sh  Exec sh with a pinned PATH
  childenv shell -c 'echo "$HOME"'       Run a script under the rewritten environment
  childenv rules --check                 Audit the rules in effect
  childenv config init                   Create a starter configuration file`,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/childenv/config.toml)")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newPrintCommand(app))
	rootCmd.AddCommand(newShellCommand(app))
	rootCmd.AddCommand(newRulesCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newDocsCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree against the production App and runs it.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := newRootCommand(app)

	cobra.OnInitialize(initRootConfig)

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.Verbose
	}

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
