// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/biglinux/libchildenv/internal/config"
	"github.com/biglinux/libchildenv/internal/issue"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// newConfigCommand creates the `childenv config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage childenv configuration",
		Long: `Manage childenv configuration.

Configuration is stored in:
  - Linux: ~/.config/childenv/config.toml
  - macOS: ~/Library/Application Support/childenv/config.toml
  - Windows: %APPDATA%\childenv\config.toml

A config.toml in the current directory is used when no file exists in the
standard location. Individual settings can be overridden with CHILDENV_*
environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			tomlContent, err := config.GenerateTOML(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, tomlContent)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		app.renderIssue(issue.ConfigLoadFailedId)
		return err
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	// The global loader records which file it read, including the working
	// directory fallback; an empty path means defaults are in effect.
	if path := config.ConfigFilePath(); path != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	if cfg.DefaultProfile != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("default_profile"), SuccessStyle.Render(cfg.DefaultProfile.String()))
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("default_profile"), SubtitleStyle.Render("(none)"))
	}
	fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("verbose"), SuccessStyle.Render(fmt.Sprintf("%v", cfg.Verbose)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", CmdStyle.Render("profiles"))
	if len(cfg.Profiles) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none configured)"))
		return nil
	}

	names := maps.Keys(cfg.Profiles)
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(app.stdout, "  %s = %s\n", SuccessStyle.Render(name), cfg.Profiles[name])
	}

	return nil
}

func initConfigFile(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)

	if fileExistsCheck(cfgPath) {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", SubtitleStyle.Render("•"), cfgPath)
		return nil
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	if loaded := config.ConfigFilePath(); loaded != "" {
		fmt.Fprintf(app.stdout, "Loaded from: %s\n", loaded)
	}

	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
