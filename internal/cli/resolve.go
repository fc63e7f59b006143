// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/biglinux/libchildenv/internal/config"
	"github.com/biglinux/libchildenv/pkg/childenv"
)

// ruleOrigin identifies where the effective rule string came from.
type ruleOrigin int

const (
	// originNone means no rule source was found anywhere; child environments
	// pass through as owned copies with no rules applied.
	originNone ruleOrigin = iota

	// originFlag means the --rules flag supplied the string directly.
	originFlag

	// originProfile means the --profile flag named a configured profile.
	originProfile

	// originInherited means the CHILD_ENV_RULES variable was already present
	// in the ambient environment.
	originInherited

	// originDefaultProfile means the configuration's default_profile named
	// the profile.
	originDefaultProfile
)

type (
	// resolvedRules is the outcome of rule resolution: the raw rule string,
	// where it came from, and the profile name when a profile supplied it.
	resolvedRules struct {
		src     string
		origin  ruleOrigin
		profile string
	}

	// ruleFlags carries the per-command rule selection flags into resolution.
	// explicitSet distinguishes --rules "" (explicit empty rule list) from an
	// absent flag.
	ruleFlags struct {
		rules       string
		explicitSet bool
		profile     string
	}
)

// describe renders the origin for diagnostics and diff footers.
func (r resolvedRules) describe() string {
	switch r.origin {
	case originFlag:
		return "--rules flag"
	case originProfile:
		return fmt.Sprintf("profile %q", r.profile)
	case originInherited:
		return "inherited " + childenv.RulesVar
	case originDefaultProfile:
		return fmt.Sprintf("default profile %q", r.profile)
	default:
		return "no rules in effect"
	}
}

// explicit reports whether the rules were chosen by the invocation itself
// (flag or profile) rather than inherited from the environment. Explicitly
// chosen rules are exported to CHILD_ENV_RULES before exec and shell runs so
// grandchildren inherit them the same way environment-carried rules do.
func (r resolvedRules) explicit() bool {
	switch r.origin {
	case originFlag, originProfile, originDefaultProfile:
		return true
	default:
		return false
	}
}

// resolveRules determines the effective rule string for one invocation,
// in precedence order:
//
//  1. the --rules flag, verbatim (an explicit empty string selects an empty
//     rule list, i.e. plain defensive copies);
//  2. the --profile flag, resolved against the configuration;
//  3. the inherited CHILD_ENV_RULES variable;
//  4. the configuration's default_profile.
//
// A missing profile is an error; a missing configuration for step 4 is not,
// it just ends resolution with no rules.
func (a *App) resolveRules(ctx context.Context, flags ruleFlags) (resolvedRules, error) {
	if flags.explicitSet {
		return resolvedRules{src: flags.rules, origin: originFlag}, nil
	}

	if flags.profile != "" {
		cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
		if err != nil {
			return resolvedRules{}, fmt.Errorf("failed to load configuration for profile %q: %w", flags.profile, err)
		}
		src, err := cfg.Profile(config.ProfileName(flags.profile))
		if err != nil {
			return resolvedRules{}, err
		}
		return resolvedRules{src: src, origin: originProfile, profile: flags.profile}, nil
	}

	if src, ok := a.LookupEnv(childenv.RulesVar); ok {
		return resolvedRules{src: src, origin: originInherited}, nil
	}

	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		// Root init already warned about a broken config file; a missing or
		// malformed config cannot block commands the user never pointed at it.
		logger.Debug("config unavailable for default profile resolution", "error", err)
		return resolvedRules{origin: originNone}, nil
	}
	if cfg.DefaultProfile == "" {
		return resolvedRules{origin: originNone}, nil
	}
	src, err := cfg.Profile(cfg.DefaultProfile)
	if err != nil {
		return resolvedRules{}, err
	}
	return resolvedRules{src: src, origin: originDefaultProfile, profile: cfg.DefaultProfile.String()}, nil
}
