package rules

// Defaults returns the built-in rule set applied on first run: email
// addresses, North American phone numbers, and US social security numbers.
// Replacements deliberately contain no digits or address characters so a
// sanitized string never re-matches any default pattern.
func Defaults() []Rule {
	return []Rule{
		{
			Name:        "Email",
			Pattern:     `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
			Replacement: "[EMAIL]",
			Enabled:     true,
			IsRegex:     true,
		},
		{
			Name:        "Phone",
			Pattern:     `\b(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`,
			Replacement: "[PHONE]",
			Enabled:     true,
			IsRegex:     true,
		},
		{
			Name:        "SSN",
			Pattern:     `\b\d{3}-\d{2}-\d{4}\b`,
			Replacement: "[SSN]",
			Enabled:     true,
			IsRegex:     true,
		},
	}
}
