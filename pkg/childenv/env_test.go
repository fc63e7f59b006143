// SPDX-License-Identifier: MPL-2.0

package childenv

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entry     string
		wantName  string
		wantValue string
		wantHas   bool
	}{
		{"PATH=/usr/bin", "PATH", "/usr/bin", true},
		{"EMPTY=", "EMPTY", "", true},
		{"TERM", "TERM", "", false},
		{"A=b=c", "A", "b=c", true},
		{"=weird", "", "weird", true},
		{"", "", "", false},
	}

	for _, tt := range tests {
		name, value, has := Split(tt.entry)
		if name != tt.wantName || value != tt.wantValue || has != tt.wantHas {
			t.Errorf("Split(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.entry, name, value, has, tt.wantName, tt.wantValue, tt.wantHas)
		}
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	original := []string{"A=1", "B=2"}
	clone := Clone(original)

	if !slices.Equal(clone, original) {
		t.Fatalf("Clone() = %v, want %v", clone, original)
	}

	// The clone must not alias the source slice.
	original[0] = "A=mutated"
	if clone[0] != "A=1" {
		t.Errorf("clone changed when source slice was mutated: %v", clone)
	}
}

func TestCloneNilYieldsEmptyNonNil(t *testing.T) {
	t.Parallel()

	clone := Clone(nil)
	if clone == nil {
		t.Fatal("Clone(nil) = nil, want empty non-nil slice")
	}
	if len(clone) != 0 {
		t.Errorf("Clone(nil) = %v, want empty", clone)
	}
}

// TestRewriteNoRulesCopies checks the defensive-copy behavior: with no rules
// the result matches the original entry for entry but is independent of it.
func TestRewriteNoRulesCopies(t *testing.T) {
	t.Parallel()

	original := []string{"HOME=/home/u", "PATH=/bin", "TERM=xterm"}
	got := Rewrite(original, nil)

	if !slices.Equal(got, original) {
		t.Fatalf("Rewrite(env, nil) = %v, want %v", got, original)
	}

	original[1] = "PATH=/mutated"
	if got[1] != "PATH=/bin" {
		t.Errorf("result changed when original slice was mutated: %v", got)
	}
}

func TestRewriteUnsetRemoves(t *testing.T) {
	t.Parallel()

	original := []string{"SECRET=shh", "HOME=/home/u"}
	got := Rewrite(original, ParseRules("SECRET"))

	want := []string{"HOME=/home/u"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteUnsetRemovesAllOccurrences(t *testing.T) {
	t.Parallel()

	original := []string{"DUP=1", "KEEP=x", "DUP=2"}
	got := Rewrite(original, ParseRules("DUP"))

	want := []string{"KEEP=x"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteSetOverwrites(t *testing.T) {
	t.Parallel()

	original := []string{"FOO=old", "BAR=keep"}
	got := Rewrite(original, ParseRules("FOO=new"))

	want := []string{"BAR=keep", "FOO=new"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteSetAppendsWhenAbsent(t *testing.T) {
	t.Parallel()

	original := []string{"HOME=/home/u"}
	got := Rewrite(original, ParseRules("NEW=value"))

	want := []string{"HOME=/home/u", "NEW=value"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

// TestRewritePreservesOrder checks that unmatched entries keep their relative
// order and that appended entries follow rule parse order.
func TestRewritePreservesOrder(t *testing.T) {
	t.Parallel()

	original := []string{"A=1", "B=2", "C=3", "D=4"}
	got := Rewrite(original, ParseRules("B,Z=26,Y=25"))

	want := []string{"A=1", "C=3", "D=4", "Z=26", "Y=25"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

// TestRewriteDuplicateSetRules checks the documented quirk: every set rule
// appends unconditionally, so duplicate rule names produce duplicate entries.
func TestRewriteDuplicateSetRules(t *testing.T) {
	t.Parallel()

	original := []string{"FOO=x", "KEEP=1"}
	got := Rewrite(original, ParseRules("FOO=a,FOO=b"))

	want := []string{"KEEP=1", "FOO=a", "FOO=b"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

// TestRewriteUnsetThenSet checks that an unset rule followed by a set rule of
// the same name still ends with the variable set: the unset claims the entry,
// the set appends regardless.
func TestRewriteUnsetThenSet(t *testing.T) {
	t.Parallel()

	original := []string{"FOO=old"}
	got := Rewrite(original, ParseRules("FOO,FOO=new"))

	want := []string{"FOO=new"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteNilOriginal(t *testing.T) {
	t.Parallel()

	got := Rewrite(nil, ParseRules("NEW=value"))
	if got == nil {
		t.Fatal("Rewrite(nil, rules) = nil, want empty non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("Rewrite(nil, rules) = %v, want empty (rules must not apply)", got)
	}
}

// TestRewriteEmptyOriginal checks that an empty (but present) environment
// still receives the set-rule appends, unlike the nil case.
func TestRewriteEmptyOriginal(t *testing.T) {
	t.Parallel()

	got := Rewrite([]string{}, ParseRules("NEW=value"))
	want := []string{"NEW=value"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

// TestRewriteBareNameEntry checks entries without '=': their whole text is
// the name, so a rule of that name claims them.
func TestRewriteBareNameEntry(t *testing.T) {
	t.Parallel()

	original := []string{"BARE", "KEEP=1"}

	got := Rewrite(original, nil)
	if !slices.Equal(got, original) {
		t.Errorf("Rewrite(env, nil) = %v, want %v", got, original)
	}

	got = Rewrite(original, ParseRules("BARE"))
	want := []string{"KEEP=1"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteEmptyNameRule(t *testing.T) {
	t.Parallel()

	// "=x" parses to a set rule with an empty name. It cannot claim a normal
	// entry, but it still appends, and it claims entries whose name is empty.
	original := []string{"=old", "KEEP=1"}
	got := Rewrite(original, ParseRules("=x"))

	want := []string{"KEEP=1", "=x"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

// TestRewriteEndToEnd runs the canonical scenario: strip a secret and pin
// PATH in one rule string.
func TestRewriteEndToEnd(t *testing.T) {
	t.Parallel()

	original := []string{"SECRET=shh", "HOME=/home/u", "PATH=/bin"}
	got := Rewrite(original, ParseRules("SECRET,PATH=/usr/bin"))

	want := []string{"HOME=/home/u", "PATH=/usr/bin"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteNameMatchIsExact(t *testing.T) {
	t.Parallel()

	original := []string{"PATHEXT=.exe", "PATH=/bin", "path=/lower"}
	got := Rewrite(original, ParseRules("PATH"))

	want := []string{"PATHEXT=.exe", "path=/lower"}
	if !slices.Equal(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}
