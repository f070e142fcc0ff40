// Package sanitizer implements the rule-based text substitution engine.
// Rules apply strictly in set order against the current, possibly
// already-rewritten string, so a later rule sees the output of earlier
// ones. That chaining is a contract callers can rely on, not an accident
// of implementation.
package sanitizer

import (
	"strings"

	"github.com/raaihank/clip-sentinel/internal/logger"
	"github.com/raaihank/clip-sentinel/internal/rules"
	"go.uber.org/zap"
)

// Engine applies rule sets to text. It holds no rule state of its own;
// callers pass an immutable snapshot into every call, so the engine never
// observes a rule mid-edit and never mutates the set.
type Engine struct {
	logger *logger.Logger
}

// New creates a sanitizer engine.
func New(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Sanitize applies every enabled rule in set order to text and returns the
// rewritten string with per-rule match counts. A rule whose pattern failed
// to compile is skipped and reported as a diagnostic; the remaining rules
// still run, so the output is sanitized as far as the valid rules allow.
func (e *Engine) Sanitize(text string, set *rules.Set) Result {
	result := Result{
		Output: text,
		Counts: make(map[string]int),
	}
	if set == nil {
		return result
	}

	for _, rule := range set.All() {
		if !rule.Enabled {
			continue
		}

		if err := rule.CompileError(); err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Rule: rule.Name,
				Err:  err,
			})
			e.logger.Warn("Rule skipped",
				zap.String("rule", rule.Name),
				zap.Error(err),
			)
			continue
		}

		count := 0
		if rule.IsRegex {
			matches := rule.Regexp().FindAllStringIndex(result.Output, -1)
			count = len(matches)
			if count > 0 {
				result.Output = rule.Regexp().ReplaceAllString(result.Output, rule.Replacement)
			}
		} else {
			count = strings.Count(result.Output, rule.Pattern)
			if count > 0 {
				result.Output = strings.ReplaceAll(result.Output, rule.Pattern, rule.Replacement)
			}
		}

		result.Counts[rule.Name] = count

		if count > 0 {
			e.logger.Debug("Rule matched",
				zap.String("rule", rule.Name),
				zap.Int("count", count),
				zap.String("replacement", rule.Replacement),
			)
		}
	}

	return result
}
