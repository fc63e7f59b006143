// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"strings"
	"testing"
)

func TestProfileName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    ProfileName
		want    bool
		wantErr bool
	}{
		{"hardened", true, false},
		{"with-dash", true, false},
		{"UPPER", true, false},
		{"", false, true},
		{"   ", false, true},
		{"\t", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.name.IsValid()
			if isValid != tt.want {
				t.Errorf("ProfileName(%q).IsValid() = %v, want %v", tt.name, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ProfileName(%q).IsValid() returned no errors, want error", tt.name)
				}
				if !errors.Is(errs[0], ErrInvalidProfileName) {
					t.Errorf("error should wrap ErrInvalidProfileName, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ProfileName(%q).IsValid() returned unexpected errors: %v", tt.name, errs)
			}
		})
	}
}

func TestProfileName_String(t *testing.T) {
	t.Parallel()

	if ProfileName("hardened").String() != "hardened" {
		t.Errorf("ProfileName.String() = %q, want hardened", ProfileName("hardened").String())
	}
}

func TestConfig_Profile(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Profiles: map[string]string{
			"hardened": "LD_PRELOAD,LD_LIBRARY_PATH",
			"tracing":  "DEBUG=1",
		},
	}

	tests := []struct {
		name      string
		lookup    ProfileName
		wantRules string
		wantErr   bool
	}{
		{"exact match", "hardened", "LD_PRELOAD,LD_LIBRARY_PATH", false},
		{"case folded", "HARDENED", "LD_PRELOAD,LD_LIBRARY_PATH", false},
		{"mixed case", "Tracing", "DEBUG=1", false},
		{"missing", "nope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rules, err := cfg.Profile(tt.lookup)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Profile(%q) should return error", tt.lookup)
				}
				if !errors.Is(err, ErrUnknownProfile) {
					t.Errorf("error should wrap ErrUnknownProfile, got: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Profile(%q) returned error: %v", tt.lookup, err)
			}
			if rules != tt.wantRules {
				t.Errorf("Profile(%q) = %q, want %q", tt.lookup, rules, tt.wantRules)
			}
		})
	}
}

func TestConfig_Profile_NoneDefined(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	_, err := cfg.Profile("anything")
	if err == nil {
		t.Fatal("Profile() on empty config should return error")
	}

	if !strings.Contains(err.Error(), "no profiles defined") {
		t.Errorf("error should mention that no profiles are defined, got: %v", err)
	}
}

func TestUnknownProfileError_ListsKnownProfiles(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Profiles: map[string]string{
			"beta":  "B=1",
			"alpha": "A=1",
		},
	}

	_, err := cfg.Profile("gamma")
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}

	var unknownErr *UnknownProfileError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error should be *UnknownProfileError, got: %T", err)
	}

	// Known profiles are reported in sorted order
	if len(unknownErr.Known) != 2 || unknownErr.Known[0] != "alpha" || unknownErr.Known[1] != "beta" {
		t.Errorf("Known = %v, want [alpha beta]", unknownErr.Known)
	}

	if !strings.Contains(err.Error(), "alpha, beta") {
		t.Errorf("Error() should list known profiles, got: %s", err.Error())
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		want    bool
		wantErr bool
	}{
		{
			name: "defaults valid",
			cfg:  *DefaultConfig(),
			want: true,
		},
		{
			name: "profiles valid",
			cfg: Config{
				DefaultProfile: "hardened",
				Profiles:       map[string]string{"hardened": "LD_PRELOAD"},
			},
			want: true,
		},
		{
			name: "empty default profile valid",
			cfg: Config{
				Profiles: map[string]string{"hardened": "LD_PRELOAD"},
			},
			want: true,
		},
		{
			name: "whitespace default profile invalid",
			cfg: Config{
				DefaultProfile: "   ",
			},
			want:    false,
			wantErr: true,
		},
		{
			name: "whitespace profile key invalid",
			cfg: Config{
				Profiles: map[string]string{" ": "A=1"},
			},
			want:    false,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.cfg.IsValid()
			if isValid != tt.want {
				t.Errorf("Config.IsValid() = %v, want %v", isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatal("Config.IsValid() returned no errors, want error")
				}
				if !errors.Is(errs[0], ErrInvalidConfig) {
					t.Errorf("error should wrap ErrInvalidConfig, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("Config.IsValid() returned unexpected errors: %v", errs)
			}
		})
	}
}

func TestInvalidConfigError_CollectsFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := Config{
		DefaultProfile: " ",
		Profiles:       map[string]string{"": "A=1"},
	}

	isValid, errs := cfg.IsValid()
	if isValid {
		t.Fatal("config with two invalid names should be invalid")
	}
	if len(errs) != 1 {
		t.Fatalf("IsValid() should wrap field errors in one InvalidConfigError, got %d errors", len(errs))
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got: %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 2 {
		t.Errorf("FieldErrors count = %d, want 2", len(cfgErr.FieldErrors))
	}
	for _, fieldErr := range cfgErr.FieldErrors {
		if !errors.Is(fieldErr, ErrInvalidProfileName) {
			t.Errorf("field error should wrap ErrInvalidProfileName, got: %v", fieldErr)
		}
	}
}
