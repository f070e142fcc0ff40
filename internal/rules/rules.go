// Package rules defines sanitization rules and the ordered, immutable
// rule set snapshots handed to the sanitizer engine. Mutation operations
// return a new Set; an existing Set is never modified, so a snapshot in
// use by a sanitize call stays consistent while the settings owner edits.
package rules

import (
	"fmt"
	"regexp"
)

// Set is an ordered snapshot of compiled rules.
type Set struct {
	rules []CompiledRule
}

// NewSet compiles the given rules into a Set. Compilation failures are
// retained on the rule rather than returned: rules loaded from persisted
// configuration must not prevent the rest of the set from working, and the
// engine surfaces them as diagnostics.
func NewSet(rs []Rule) *Set {
	compiled := make([]CompiledRule, 0, len(rs))
	for _, r := range rs {
		compiled = append(compiled, compile(r))
	}
	return &Set{rules: compiled}
}

func compile(r Rule) CompiledRule {
	c := CompiledRule{Rule: r}
	if !r.IsRegex {
		return c
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		c.compileErr = &InvalidPatternError{Rule: r.Name, Err: err}
		return c
	}
	c.re = re
	return c
}

// Validate checks a rule for use in a Set. It rejects empty names and
// patterns, regex patterns that do not compile, and patterns that match
// the empty string.
func Validate(r Rule) error {
	if r.Name == "" {
		return fmt.Errorf("rule name must not be empty")
	}
	if r.Pattern == "" {
		return fmt.Errorf("rule %q: pattern must not be empty", r.Name)
	}
	if !r.IsRegex {
		return nil
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return &InvalidPatternError{Rule: r.Name, Err: err}
	}
	if re.MatchString("") {
		return &EmptyMatchError{Rule: r.Name}
	}
	return nil
}

// Len returns the number of rules in the set, including disabled ones.
func (s *Set) Len() int {
	return len(s.rules)
}

// All returns the compiled rules in application order.
func (s *Set) All() []CompiledRule {
	out := make([]CompiledRule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Rules returns the persisted form of the rules, in order, for
// re-persistence after edits.
func (s *Set) Rules() []Rule {
	out := make([]Rule, 0, len(s.rules))
	for _, c := range s.rules {
		out = append(out, c.Rule)
	}
	return out
}

// Names returns the rule names in application order.
func (s *Set) Names() []string {
	out := make([]string, 0, len(s.rules))
	for _, c := range s.rules {
		out = append(out, c.Name)
	}
	return out
}

func (s *Set) index(name string) int {
	for i, c := range s.rules {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Add validates the rule and returns a new Set with it appended.
func (s *Set) Add(r Rule) (*Set, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	if s.index(r.Name) >= 0 {
		return nil, fmt.Errorf("rule %q already exists", r.Name)
	}
	next := make([]CompiledRule, len(s.rules), len(s.rules)+1)
	copy(next, s.rules)
	next = append(next, compile(r))
	return &Set{rules: next}, nil
}

// Remove returns a new Set without the named rule.
func (s *Set) Remove(name string) (*Set, error) {
	i := s.index(name)
	if i < 0 {
		return nil, fmt.Errorf("unknown rule: %s", name)
	}
	next := make([]CompiledRule, 0, len(s.rules)-1)
	next = append(next, s.rules[:i]...)
	next = append(next, s.rules[i+1:]...)
	return &Set{rules: next}, nil
}

// Replace validates the replacement and returns a new Set with the named
// rule swapped in place, preserving its position. The replacement may
// rename the rule as long as the new name stays unique.
func (s *Set) Replace(name string, r Rule) (*Set, error) {
	i := s.index(name)
	if i < 0 {
		return nil, fmt.Errorf("unknown rule: %s", name)
	}
	if err := Validate(r); err != nil {
		return nil, err
	}
	if j := s.index(r.Name); j >= 0 && j != i {
		return nil, fmt.Errorf("rule %q already exists", r.Name)
	}
	next := make([]CompiledRule, len(s.rules))
	copy(next, s.rules)
	next[i] = compile(r)
	return &Set{rules: next}, nil
}

// SetEnabled returns a new Set with the named rule enabled or disabled.
func (s *Set) SetEnabled(name string, enabled bool) (*Set, error) {
	i := s.index(name)
	if i < 0 {
		return nil, fmt.Errorf("unknown rule: %s", name)
	}
	next := make([]CompiledRule, len(s.rules))
	copy(next, s.rules)
	next[i].Enabled = enabled
	return &Set{rules: next}, nil
}
