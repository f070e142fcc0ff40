package rules

import "regexp"

// Rule is the persisted form of a single sanitization rule.
type Rule struct {
	Name        string `toml:"name" mapstructure:"name"`
	Pattern     string `toml:"pattern" mapstructure:"pattern"`
	Replacement string `toml:"replacement" mapstructure:"replacement"`
	Enabled     bool   `toml:"enabled" mapstructure:"enabled"`
	IsRegex     bool   `toml:"is_regex" mapstructure:"is_regex"`
}

// CompiledRule pairs a Rule with its compiled pattern. Literal rules carry
// a nil Regexp. A rule whose pattern failed to compile is kept with its
// compile error so the engine can report it instead of silently dropping it.
type CompiledRule struct {
	Rule
	re         *regexp.Regexp
	compileErr error
}

// Regexp returns the compiled pattern, or nil for literal rules and rules
// whose pattern failed to compile.
func (c *CompiledRule) Regexp() *regexp.Regexp {
	return c.re
}

// CompileError returns the error from compiling the rule's pattern, if any.
func (c *CompiledRule) CompileError() error {
	return c.compileErr
}
