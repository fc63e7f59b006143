// SPDX-License-Identifier: MPL-2.0

package config

import "context"

var (
	// globalConfig caches the loaded configuration for the process lifetime.
	globalConfig *Config
	// configPath records where the cached configuration was loaded from
	// ("" when defaults were used).
	configPath string
	// configFilePathOverride forces loading from a specific file (--config flag).
	configFilePathOverride string
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
	// errLastLoad records the most recent load failure so callers that fall
	// back to defaults can still surface it.
	errLastLoad error
)

// Load returns the cached configuration, loading it on first use.
// Load failures are recorded and retrievable via LastLoadError.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		errLastLoad = err
		return nil, err
	}

	errLastLoad = nil
	globalConfig = cfg
	configPath = path
	return cfg, nil
}

// Get returns the loaded configuration, falling back to defaults when loading
// fails. The failure is stored for later retrieval via LastLoadError so the
// CLI can warn without aborting.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LastLoadError returns the error from the most recent load attempt, or nil
// when the configuration loaded cleanly.
func LastLoadError() error {
	return errLastLoad
}

// ConfigFilePath returns the path of the loaded config file, or "" when the
// configuration came from defaults.
func ConfigFilePath() string {
	return configPath
}

// SetConfigFilePathOverride forces subsequent loads to read the given file.
// The cached configuration is cleared so the override takes effect.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
	ResetCache()
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// ResetCache clears the cached configuration while preserving overrides.
// The next Load reads from disk again.
func ResetCache() {
	globalConfig = nil
	configPath = ""
}

// Reset clears all cached state and overrides. Call from test cleanup to
// restore defaults.
func Reset() {
	globalConfig = nil
	configPath = ""
	configFilePathOverride = ""
	configDirOverride = ""
	errLastLoad = nil
}
