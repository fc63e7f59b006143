// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/biglinux/libchildenv/internal/issue"
	"github.com/biglinux/libchildenv/pkg/platform"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "childenv"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// EnvPrefix is the prefix for environment variable overrides
	// (CHILDENV_DEFAULT_PROFILE, CHILDENV_VERBOSE).
	EnvPrefix = "CHILDENV"
)

// ConfigDir returns the childenv configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level cache state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("default_profile", string(defaults.DefaultProfile))
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("profiles", defaults.Profiles)

	// Scalar settings may be overridden via CHILDENV_-prefixed env vars.
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	resolvedPath := ""

	// If a custom config file path is set via the --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'childenv config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadTOMLIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid TOML syntax").
				WithSuggestion("Verify the configuration values match the expected fields").
				WithSuggestion("See 'childenv config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		// Get config directory
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		// Try to load the TOML config file
		tomlPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(tomlPath) {
			if err := loadTOMLIntoViper(v, tomlPath); err != nil {
				return nil, "", issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(tomlPath).
					WithSuggestion("Check that the file contains valid TOML syntax").
					WithSuggestion("Verify the configuration values match the expected fields").
					WithSuggestion("See 'childenv config --help' for configuration options").
					Wrap(err).
					BuildError()
			}
			resolvedPath = tomlPath
		} else {
			// Also check current directory
			localTomlPath := ConfigFileName + "." + ConfigFileExt
			if fileExists(localTomlPath) {
				if err := loadTOMLIntoViper(v, localTomlPath); err != nil {
					return nil, "", issue.NewErrorContext().
						WithOperation("load configuration").
						WithResource(localTomlPath).
						WithSuggestion("Check that the file contains valid TOML syntax").
						WithSuggestion("Verify the configuration values match the expected fields").
						WithSuggestion("See 'childenv config --help' for configuration options").
						Wrap(err).
						BuildError()
				}
				resolvedPath = localTomlPath
			}
			// If no config file found, use defaults (no error)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate field-level constraints that TOML cannot express.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Profile names must be non-empty and not whitespace-only").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	// When default_profile is set it must name a profile defined under [profiles].
	if err := validateDefaultProfile(&cfg); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Set default_profile to one of the names under [profiles]").
			WithSuggestion("Use 'childenv config show' to inspect the resolved configuration").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadTOMLIntoViper parses a TOML file and merges its contents into Viper.
//
// Note: This parses with go-toml directly instead of viper.ReadInConfig because:
// 1. go-toml's DecodeError carries line/column context for error messages
// 2. Merging a plain map preserves Viper's defaults and env override precedence
func loadTOMLIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("failed to parse config file at line %d, column %d: %s", row, col, decodeErr.Error())
		}
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// validateDefaultProfile checks a cross-field constraint the field validators
// cannot express: when default_profile is set, it must name a profile defined
// under [profiles].
func validateDefaultProfile(cfg *Config) error {
	if cfg.DefaultProfile == "" {
		return nil
	}
	_, err := cfg.Profile(cfg.DefaultProfile)
	return err
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig creates a default config file if it doesn't exist
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	tomlContent, err := GenerateTOML(DefaultConfig())
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfgPath, []byte(tomlContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Save writes the current configuration to file
func Save(cfg *Config) error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	tomlContent, err := GenerateTOML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfgPath, []byte(tomlContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateTOML generates a TOML representation of the configuration. When no
// profiles are defined it appends a commented example block so a starter file
// documents the expected shape.
func GenerateTOML(cfg *Config) (string, error) {
	body, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder

	sb.WriteString("# childenv configuration file\n")
	sb.WriteString("# See 'childenv docs' for the rule string format.\n\n")
	sb.Write(body)

	if len(cfg.Profiles) == 0 {
		sb.WriteString("\n# Example profiles (uncomment and adjust):\n")
		sb.WriteString("#\n")
		sb.WriteString("# [profiles]\n")
		sb.WriteString("# hardened = \"LD_PRELOAD,LD_LIBRARY_PATH,PATH=/usr/bin:/bin\"\n")
		sb.WriteString("# tracing = \"DEBUG=1,RUST_LOG=trace\"\n")
	}

	return sb.String(), nil
}
