package rules

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// TestValidate tests rule validation at creation time
func TestValidate(t *testing.T) {
	t.Run("ValidRegexRule", func(t *testing.T) {
		err := Validate(Rule{Name: "SSN", Pattern: `\b\d{3}-\d{2}-\d{4}\b`, Replacement: "[SSN]", Enabled: true, IsRegex: true})
		if err != nil {
			t.Errorf("Valid rule rejected: %v", err)
		}
	})

	t.Run("ValidLiteralRule", func(t *testing.T) {
		err := Validate(Rule{Name: "Codename", Pattern: "Orion", Replacement: "[PROJECT]", Enabled: true})
		if err != nil {
			t.Errorf("Valid literal rule rejected: %v", err)
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		if err := Validate(Rule{Pattern: "x"}); err == nil {
			t.Error("Rule with empty name accepted")
		}
	})

	t.Run("EmptyPattern", func(t *testing.T) {
		if err := Validate(Rule{Name: "Empty"}); err == nil {
			t.Error("Rule with empty pattern accepted")
		}
	})

	t.Run("InvalidRegex", func(t *testing.T) {
		err := Validate(Rule{Name: "Broken", Pattern: "(unbalanced", IsRegex: true})
		var patternErr *InvalidPatternError
		if !errors.As(err, &patternErr) {
			t.Fatalf("Expected InvalidPatternError, got %v", err)
		}
		if patternErr.Rule != "Broken" {
			t.Errorf("Error names rule %q, want %q", patternErr.Rule, "Broken")
		}
	})

	t.Run("EmptyMatchPattern", func(t *testing.T) {
		err := Validate(Rule{Name: "Star", Pattern: "a*", IsRegex: true})
		var emptyErr *EmptyMatchError
		if !errors.As(err, &emptyErr) {
			t.Fatalf("Expected EmptyMatchError, got %v", err)
		}
		if emptyErr.Rule != "Star" {
			t.Errorf("Error names rule %q, want %q", emptyErr.Rule, "Star")
		}
	})

	t.Run("DefaultsAreValid", func(t *testing.T) {
		for _, rule := range Defaults() {
			if err := Validate(rule); err != nil {
				t.Errorf("Default rule %q failed validation: %v", rule.Name, err)
			}
		}
	})
}

// TestNewSet tests compilation of persisted rules, including bad ones
func TestNewSet(t *testing.T) {
	t.Run("RetainsInvalidRules", func(t *testing.T) {
		set := NewSet([]Rule{
			{Name: "Broken", Pattern: "(", Enabled: true, IsRegex: true},
			{Name: "Email", Pattern: `\S+@\S+\.\S+`, Replacement: "[EMAIL]", Enabled: true, IsRegex: true},
		})
		if set.Len() != 2 {
			t.Fatalf("Set.Len() = %d, want 2", set.Len())
		}
		compiled := set.All()
		if compiled[0].CompileError() == nil {
			t.Error("Broken rule carries no compile error")
		}
		if compiled[1].CompileError() != nil {
			t.Errorf("Valid rule carries compile error: %v", compiled[1].CompileError())
		}
		if compiled[1].Regexp() == nil {
			t.Error("Valid regex rule has nil Regexp")
		}
	})

	t.Run("LiteralRuleHasNilRegexp", func(t *testing.T) {
		set := NewSet([]Rule{{Name: "Lit", Pattern: "secret", Enabled: true}})
		if re := set.All()[0].Regexp(); re != nil {
			t.Errorf("Literal rule compiled to %v", re)
		}
	})

	t.Run("PreservesOrder", func(t *testing.T) {
		set := NewSet([]Rule{
			{Name: "first", Pattern: "a"},
			{Name: "second", Pattern: "b"},
			{Name: "third", Pattern: "c"},
		})
		want := []string{"first", "second", "third"}
		if got := set.Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
	})
}

// TestSetMutation tests that mutations build new snapshots
func TestSetMutation(t *testing.T) {
	base := NewSet(Defaults())

	t.Run("Add", func(t *testing.T) {
		next, err := base.Add(Rule{Name: "IPv4", Pattern: `\b\d{1,3}(\.\d{1,3}){3}\b`, Replacement: "[IP]", Enabled: true, IsRegex: true})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if next.Len() != base.Len()+1 {
			t.Errorf("New set has %d rules, want %d", next.Len(), base.Len()+1)
		}
		if base.Len() != 3 {
			t.Errorf("Add mutated the original set: %d rules", base.Len())
		}
		names := next.Names()
		if names[len(names)-1] != "IPv4" {
			t.Errorf("Added rule not appended: %v", names)
		}
	})

	t.Run("AddRejectsDuplicateName", func(t *testing.T) {
		if _, err := base.Add(Rule{Name: "Email", Pattern: "x"}); err == nil {
			t.Error("Duplicate rule name accepted")
		}
	})

	t.Run("AddRejectsInvalidRule", func(t *testing.T) {
		if _, err := base.Add(Rule{Name: "Star", Pattern: "a*", IsRegex: true}); err == nil {
			t.Error("Empty-match pattern accepted at add time")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		next, err := base.Remove("Phone")
		if err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		want := []string{"Email", "SSN"}
		if got := next.Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
		if base.Len() != 3 {
			t.Error("Remove mutated the original set")
		}
	})

	t.Run("RemoveUnknown", func(t *testing.T) {
		if _, err := base.Remove("Nope"); err == nil {
			t.Error("Removing unknown rule succeeded")
		}
	})

	t.Run("ReplacePreservesPosition", func(t *testing.T) {
		next, err := base.Replace("Phone", Rule{Name: "Phone", Pattern: `\d{10}`, Replacement: "[PHONE]", Enabled: true, IsRegex: true})
		if err != nil {
			t.Fatalf("Replace failed: %v", err)
		}
		want := []string{"Email", "Phone", "SSN"}
		if got := next.Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("Names() = %v, want %v", got, want)
		}
		if next.All()[1].Pattern != `\d{10}` {
			t.Errorf("Replacement not applied: %q", next.All()[1].Pattern)
		}
	})

	t.Run("ReplaceRejectsNameCollision", func(t *testing.T) {
		if _, err := base.Replace("Phone", Rule{Name: "Email", Pattern: "x"}); err == nil {
			t.Error("Rename onto existing rule accepted")
		}
	})

	t.Run("SetEnabled", func(t *testing.T) {
		next, err := base.SetEnabled("SSN", false)
		if err != nil {
			t.Fatalf("SetEnabled failed: %v", err)
		}
		if next.All()[2].Enabled {
			t.Error("Rule still enabled in new set")
		}
		if !base.All()[2].Enabled {
			t.Error("SetEnabled mutated the original set")
		}
	})
}

// TestImportExport tests the TOML rule file codec
func TestImportExport(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Export(&buf, Defaults()); err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		imported, skipped, err := Import(&buf)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if len(skipped) != 0 {
			t.Errorf("Valid rules skipped: %v", skipped)
		}
		if !reflect.DeepEqual(imported, Defaults()) {
			t.Errorf("Round trip mismatch: %v", imported)
		}
	})

	t.Run("SkipsInvalidRecords", func(t *testing.T) {
		file := `
[[rules]]
name = "Broken"
pattern = "(unbalanced"
replacement = "[X]"
enabled = true
is_regex = true

[[rules]]
name = "SSN"
pattern = '\b\d{3}-\d{2}-\d{4}\b'
replacement = "[SSN]"
enabled = true
is_regex = true
`
		imported, skipped, err := Import(strings.NewReader(file))
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if len(imported) != 1 || imported[0].Name != "SSN" {
			t.Errorf("Imported = %v, want just SSN", imported)
		}
		if len(skipped) != 1 {
			t.Fatalf("Skipped = %v, want one entry", skipped)
		}
		var patternErr *InvalidPatternError
		if !errors.As(skipped[0], &patternErr) {
			t.Errorf("Skipped error is %T, want *InvalidPatternError", skipped[0])
		}
	})

	t.Run("MalformedFile", func(t *testing.T) {
		if _, _, err := Import(strings.NewReader("not [ valid toml")); err == nil {
			t.Error("Malformed file imported without error")
		}
	})
}
