package rules

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// ruleFile is the on-disk shape of an exported rule file: a sequence of
// [[rules]] tables, the same layout the main config file uses.
type ruleFile struct {
	Rules []Rule `toml:"rules"`
}

// Export writes the rules as a TOML rule file.
func Export(w io.Writer, rs []Rule) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(ruleFile{Rules: rs}); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return nil
}

// Import reads a TOML rule file. Records that fail validation are skipped
// and reported in the second return value; one bad record must not discard
// an otherwise usable file. A malformed file returns a nil slice and an
// error.
func Import(r io.Reader) ([]Rule, []error, error) {
	var file ruleFile
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("failed to decode rule file: %w", err)
	}

	valid := make([]Rule, 0, len(file.Rules))
	var skipped []error
	seen := make(map[string]bool)

	for _, rule := range file.Rules {
		if err := Validate(rule); err != nil {
			skipped = append(skipped, err)
			continue
		}
		if seen[rule.Name] {
			skipped = append(skipped, fmt.Errorf("rule %q already exists", rule.Name))
			continue
		}
		seen[rule.Name] = true
		valid = append(valid, rule)
	}

	return valid, skipped, nil
}
