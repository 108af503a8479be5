package validation

import (
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

// Severity classifies a rule. Warnings never invalidate a result.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is the outcome of a single rule.
type Issue struct {
	Valid      bool   `json:"valid"`
	Message    string `json:"message"`
	Line       int    `json:"line,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	RuleID     string `json:"ruleId,omitempty"`
	RuleName   string `json:"ruleName,omitempty"`
}

// SchemaValidationResult aggregates the failed rules of one validation run.
type SchemaValidationResult struct {
	Valid    bool           `json:"valid"`
	Errors   []Issue        `json:"errors"`
	Warnings []Issue        `json:"warnings"`
	Schema   *schema.Schema `json:"schema"`
}

// Rule checks one property of section code. s is nil when the code has no
// parseable configuration block.
type Rule struct {
	ID          string
	Name        string
	Description string
	Severity    Severity
	Check       func(code string, s *schema.Schema) Issue
}

// Validator runs an ordered rule list.
type Validator struct {
	rules []Rule
}

// Option customises a Validator.
type Option func(*Validator)

// WithRules replaces the default rule list.
func WithRules(rules ...Rule) Option {
	return func(v *Validator) {
		v.rules = append([]Rule(nil), rules...)
	}
}

// New constructs a Validator using the default rules unless overridden.
func New(options ...Option) *Validator {
	v := &Validator{rules: Rules()}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Rules returns a copy of the default rule list in evaluation order.
func (v *Validator) Rules() []Rule {
	return append([]Rule(nil), v.rules...)
}

// Validate runs every rule against code.
func (v *Validator) Validate(code string) SchemaValidationResult {
	parsed := schema.Parse(code)
	result := SchemaValidationResult{
		Errors:   []Issue{},
		Warnings: []Issue{},
		Schema:   parsed,
	}

	for _, rule := range v.rules {
		if rule.Check == nil {
			continue
		}
		issue := rule.Check(code, parsed)
		if issue.Valid {
			continue
		}
		issue.RuleID = rule.ID
		issue.RuleName = rule.Name
		if rule.Severity == SeverityError {
			result.Errors = append(result.Errors, issue)
		} else {
			result.Warnings = append(result.Warnings, issue)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

var defaultValidator = New()

// Validate runs the default rules against code.
func Validate(code string) SchemaValidationResult {
	return defaultValidator.Validate(code)
}
