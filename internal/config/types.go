// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// ErrInvalidProfileName is the sentinel error wrapped by InvalidProfileNameError.
	ErrInvalidProfileName = errors.New("invalid profile name")
	// ErrUnknownProfile is the sentinel error wrapped by UnknownProfileError.
	ErrUnknownProfile = errors.New("unknown profile")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ProfileName identifies a named rule set in the configuration.
	// Profile names are case-insensitive: Viper folds configuration keys to
	// lower case, so lookups normalize the requested name the same way.
	// A valid name must be non-empty and not whitespace-only.
	ProfileName string

	// InvalidProfileNameError is returned when a ProfileName value is empty
	// or whitespace-only. It wraps ErrInvalidProfileName for errors.Is().
	InvalidProfileNameError struct {
		Value ProfileName
	}

	// UnknownProfileError is returned when a profile lookup does not match any
	// profile defined in the configuration. It wraps ErrUnknownProfile for
	// errors.Is() compatibility and carries the defined profile names so error
	// messages can point the user at what is actually available.
	UnknownProfileError struct {
		Name  ProfileName
		Known []string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DefaultProfile names the profile applied when no explicit rules are given.
		// The zero value ("") means no profile is applied by default.
		DefaultProfile ProfileName `json:"default_profile" mapstructure:"default_profile" toml:"default_profile"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		// Profiles maps profile names to rule strings.
		Profiles map[string]string `json:"profiles" mapstructure:"profiles" toml:"profiles"`
	}
)

// String returns the string representation of the ProfileName.
func (p ProfileName) String() string { return string(p) }

// IsValid returns whether the ProfileName is valid.
// A valid name must be non-empty and not whitespace-only.
func (p ProfileName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidProfileNameError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidProfileNameError.
func (e *InvalidProfileNameError) Error() string {
	return fmt.Sprintf("invalid profile name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidProfileName for errors.Is() compatibility.
func (e *InvalidProfileNameError) Unwrap() error { return ErrInvalidProfileName }

// Error implements the error interface for UnknownProfileError.
func (e *UnknownProfileError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown profile %q (no profiles defined)", e.Name)
	}
	return fmt.Sprintf("unknown profile %q (defined: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Unwrap returns ErrUnknownProfile for errors.Is() compatibility.
func (e *UnknownProfileError) Unwrap() error { return ErrUnknownProfile }

// IsValid returns whether the Config has valid fields.
// It validates DefaultProfile (when non-empty) and every key under Profiles;
// Verbose is a bool and needs no validation. Whether DefaultProfile names a
// defined profile is checked separately at load time, because partially built
// configs (e.g. flag overrides) may legitimately set one before the other.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if c.DefaultProfile != "" {
		if valid, fieldErrs := c.DefaultProfile.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for name := range c.Profiles {
		if valid, fieldErrs := ProfileName(name).IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Profile returns the rule string for the named profile. The lookup folds the
// requested name to lower case to match Viper's key normalization.
func (c *Config) Profile(name ProfileName) (string, error) {
	if rules, ok := c.Profiles[strings.ToLower(string(name))]; ok {
		return rules, nil
	}
	return "", &UnknownProfileError{Name: name, Known: profileNames(c.Profiles)}
}

// profileNames returns the defined profile names in sorted order.
func profileNames(profiles map[string]string) []string {
	names := maps.Keys(profiles)
	slices.Sort(names)
	return names
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultProfile: "",
		Verbose:        false,
		Profiles:       map[string]string{},
	}
}
