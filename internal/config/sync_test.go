// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// =============================================================================
// Tag Sync Tests
// =============================================================================
// Config fields carry three struct tags: json (API surface), mapstructure
// (Viper decoding), and toml (go-toml encoding for starter files). These tests
// verify the three stay aligned, catching misalignments at CI time and
// preventing silent parsing failures.

// tagName strips options like ",omitempty" from a struct tag value.
func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func TestConfigTagSync(t *testing.T) {
	t.Parallel()

	typ := reflect.TypeFor[Config]()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := tagName(field.Tag.Get("json"))
		mapTag := tagName(field.Tag.Get("mapstructure"))
		tomlTag := tagName(field.Tag.Get("toml"))

		if jsonTag == "" || mapTag == "" || tomlTag == "" {
			t.Errorf("[Config.%s] missing tag: json=%q mapstructure=%q toml=%q",
				field.Name, jsonTag, mapTag, tomlTag)
			continue
		}

		if jsonTag != mapTag || mapTag != tomlTag {
			t.Errorf("[Config.%s] tags disagree: json=%q mapstructure=%q toml=%q",
				field.Name, jsonTag, mapTag, tomlTag)
		}
	}
}

// TestConfigRoundTrip verifies that a config written by GenerateTOML decodes
// back to the same values through the same Viper path Load uses.
func TestConfigRoundTrip(t *testing.T) {
	t.Parallel()

	original := &Config{
		DefaultProfile: "hardened",
		Verbose:        true,
		Profiles: map[string]string{
			"hardened": "LD_PRELOAD,LD_LIBRARY_PATH,PATH=/usr/bin:/bin",
			"tracing":  "DEBUG=1,RUST_LOG=trace",
		},
	}

	content, err := GenerateTOML(original)
	if err != nil {
		t.Fatalf("GenerateTOML() returned error: %v", err)
	}

	var configMap map[string]any
	if err := toml.Unmarshal([]byte(content), &configMap); err != nil {
		t.Fatalf("generated TOML does not parse: %v", err)
	}

	v := viper.New()
	if err := v.MergeConfigMap(configMap); err != nil {
		t.Fatalf("MergeConfigMap() returned error: %v", err)
	}

	var decoded Config
	if err := v.Unmarshal(&decoded); err != nil {
		t.Fatalf("Unmarshal() returned error: %v", err)
	}

	if decoded.DefaultProfile != original.DefaultProfile {
		t.Errorf("DefaultProfile = %q, want %q", decoded.DefaultProfile, original.DefaultProfile)
	}
	if decoded.Verbose != original.Verbose {
		t.Errorf("Verbose = %v, want %v", decoded.Verbose, original.Verbose)
	}
	if len(decoded.Profiles) != len(original.Profiles) {
		t.Fatalf("Profiles length = %d, want %d", len(decoded.Profiles), len(original.Profiles))
	}
	for name, rules := range original.Profiles {
		if decoded.Profiles[name] != rules {
			t.Errorf("Profiles[%s] = %q, want %q", name, decoded.Profiles[name], rules)
		}
	}
}
