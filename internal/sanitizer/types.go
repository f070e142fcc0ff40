package sanitizer

// Diagnostic reports a rule that was skipped during a sanitize pass,
// typically because its pattern failed to compile.
type Diagnostic struct {
	Rule string
	Err  error
}

// Result contains the outcome of one sanitize pass. Counts has an entry
// for every enabled rule that was applied, zero or not; disabled and
// skipped rules do not appear.
type Result struct {
	Output      string
	Counts      map[string]int
	Diagnostics []Diagnostic
}

// Total returns the number of substitutions made across all rules.
func (r Result) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Changed reports whether any substitution was made.
func (r Result) Changed() bool {
	return r.Total() > 0
}

// SkippedRules returns the names of rules that produced diagnostics.
func (r Result) SkippedRules() []string {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		names = append(names, d.Rule)
	}
	return names
}
