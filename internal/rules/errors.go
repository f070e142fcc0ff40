package rules

import "fmt"

// InvalidPatternError reports a rule whose pattern does not compile.
type InvalidPatternError struct {
	Rule string
	Err  error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("rule %q: invalid pattern: %v", e.Rule, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// EmptyMatchError reports a rule whose pattern matches the empty string.
// Such rules are rejected at creation time because they would either loop
// forever or rewrite nothing, depending on the replacement strategy.
type EmptyMatchError struct {
	Rule string
}

func (e *EmptyMatchError) Error() string {
	return fmt.Sprintf("rule %q: pattern matches the empty string", e.Rule)
}
