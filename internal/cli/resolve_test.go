// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/biglinux/libchildenv/internal/config"
)

// TestResolveRules covers the resolution precedence: --rules, then
// --profile, then the inherited variable, then the config default profile.
func TestResolveRules(t *testing.T) {
	cfgWithProfiles := &config.Config{
		DefaultProfile: "tracing",
		Profiles: map[string]string{
			"hardened": "LD_PRELOAD,PATH=/usr/bin",
			"tracing":  "DEBUG=1",
		},
	}

	tests := []struct {
		name        string
		environ     []string
		provider    ConfigProvider
		flags       ruleFlags
		wantSrc     string
		wantOrigin  ruleOrigin
		wantProfile string
	}{
		{
			name:       "rules flag wins over everything",
			environ:    []string{"CHILD_ENV_RULES=FROM_ENV"},
			provider:   &fakeConfigProvider{cfg: cfgWithProfiles},
			flags:      ruleFlags{rules: "FOO=1", explicitSet: true, profile: "hardened"},
			wantSrc:    "FOO=1",
			wantOrigin: originFlag,
		},
		{
			name:       "explicit empty rules flag selects an empty rule list",
			environ:    []string{"CHILD_ENV_RULES=FROM_ENV"},
			flags:      ruleFlags{rules: "", explicitSet: true},
			wantSrc:    "",
			wantOrigin: originFlag,
		},
		{
			name:        "profile flag wins over inherited variable",
			environ:     []string{"CHILD_ENV_RULES=FROM_ENV"},
			provider:    &fakeConfigProvider{cfg: cfgWithProfiles},
			flags:       ruleFlags{profile: "hardened"},
			wantSrc:     "LD_PRELOAD,PATH=/usr/bin",
			wantOrigin:  originProfile,
			wantProfile: "hardened",
		},
		{
			name:       "inherited variable wins over default profile",
			environ:    []string{"CHILD_ENV_RULES=FROM_ENV"},
			provider:   &fakeConfigProvider{cfg: cfgWithProfiles},
			flags:      ruleFlags{},
			wantSrc:    "FROM_ENV",
			wantOrigin: originInherited,
		},
		{
			name:       "inherited empty variable still counts as present",
			environ:    []string{"CHILD_ENV_RULES="},
			provider:   &fakeConfigProvider{cfg: cfgWithProfiles},
			flags:      ruleFlags{},
			wantSrc:    "",
			wantOrigin: originInherited,
		},
		{
			name:        "default profile is the last resort",
			environ:     []string{"HOME=/home/u"},
			provider:    &fakeConfigProvider{cfg: cfgWithProfiles},
			flags:       ruleFlags{},
			wantSrc:     "DEBUG=1",
			wantOrigin:  originDefaultProfile,
			wantProfile: "tracing",
		},
		{
			name:       "nothing anywhere resolves to none",
			environ:    []string{"HOME=/home/u"},
			provider:   &fakeConfigProvider{},
			flags:      ruleFlags{},
			wantSrc:    "",
			wantOrigin: originNone,
		},
		{
			name:       "config load failure without profile flag degrades to none",
			environ:    []string{"HOME=/home/u"},
			provider:   &fakeConfigProvider{err: errors.New("boom")},
			flags:      ruleFlags{},
			wantSrc:    "",
			wantOrigin: originNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEnv(tt.environ, tt.provider)

			got, err := te.app.resolveRules(context.Background(), tt.flags)
			if err != nil {
				t.Fatalf("resolveRules() error = %v, want nil", err)
			}
			if got.src != tt.wantSrc {
				t.Errorf("resolveRules() src = %q, want %q", got.src, tt.wantSrc)
			}
			if got.origin != tt.wantOrigin {
				t.Errorf("resolveRules() origin = %v, want %v", got.origin, tt.wantOrigin)
			}
			if got.profile != tt.wantProfile {
				t.Errorf("resolveRules() profile = %q, want %q", got.profile, tt.wantProfile)
			}
		})
	}
}

// TestResolveRules_Errors covers the failure paths: unknown profiles and a
// broken configuration behind an explicit --profile.
func TestResolveRules_Errors(t *testing.T) {
	cfg := &config.Config{Profiles: map[string]string{"hardened": "LD_PRELOAD"}}

	t.Run("unknown profile", func(t *testing.T) {
		te := newTestEnv(nil, &fakeConfigProvider{cfg: cfg})

		_, err := te.app.resolveRules(context.Background(), ruleFlags{profile: "ghost"})
		if err == nil {
			t.Fatal("resolveRules() error = nil, want unknown profile error")
		}
		if !errors.Is(err, config.ErrUnknownProfile) {
			t.Errorf("resolveRules() error = %v, want errors.Is(err, ErrUnknownProfile)", err)
		}
	})

	t.Run("config load failure with profile flag", func(t *testing.T) {
		te := newTestEnv(nil, &fakeConfigProvider{err: errors.New("broken toml")})

		_, err := te.app.resolveRules(context.Background(), ruleFlags{profile: "hardened"})
		if err == nil {
			t.Fatal("resolveRules() error = nil, want load error")
		}
	})

	t.Run("unknown default profile", func(t *testing.T) {
		broken := &config.Config{DefaultProfile: "ghost", Profiles: map[string]string{"hardened": "X"}}
		te := newTestEnv(nil, &fakeConfigProvider{cfg: broken})

		_, err := te.app.resolveRules(context.Background(), ruleFlags{})
		if err == nil {
			t.Fatal("resolveRules() error = nil, want unknown profile error")
		}
		if !errors.Is(err, config.ErrUnknownProfile) {
			t.Errorf("resolveRules() error = %v, want errors.Is(err, ErrUnknownProfile)", err)
		}
	})
}

// TestResolvedRules_Describe pins the origin descriptions used in diff
// footers and debug logs.
func TestResolvedRules_Describe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resolved resolvedRules
		want     string
	}{
		{name: "none", resolved: resolvedRules{origin: originNone}, want: "no rules in effect"},
		{name: "flag", resolved: resolvedRules{origin: originFlag}, want: "--rules flag"},
		{name: "profile", resolved: resolvedRules{origin: originProfile, profile: "hardened"}, want: `profile "hardened"`},
		{name: "inherited", resolved: resolvedRules{origin: originInherited}, want: "inherited CHILD_ENV_RULES"},
		{name: "default profile", resolved: resolvedRules{origin: originDefaultProfile, profile: "tracing"}, want: `default profile "tracing"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.resolved.describe(); got != tt.want {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestResolvedRules_Explicit verifies which origins are exported back into
// the environment before a handoff.
func TestResolvedRules_Explicit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin ruleOrigin
		want   bool
	}{
		{origin: originNone, want: false},
		{origin: originFlag, want: true},
		{origin: originProfile, want: true},
		{origin: originInherited, want: false},
		{origin: originDefaultProfile, want: true},
	}

	for _, tt := range tests {
		r := resolvedRules{origin: tt.origin}
		if got := r.explicit(); got != tt.want {
			t.Errorf("explicit() for origin %v = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
