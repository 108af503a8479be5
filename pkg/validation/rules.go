package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

var (
	schemaBlockPattern = regexp.MustCompile(`(?s)\{%-?\s*schema\s*-?%\}.*\{%-?\s*endschema\s*-?%\}`)
	styleBlockPattern  = regexp.MustCompile(`(?s)\{%-?\s*style\s*-?%\}.*\{%-?\s*endstyle\s*-?%\}`)
	sectionIDPattern   = regexp.MustCompile(`shopify-section-\{\{-?\s*section\.id\s*-?\}\}`)

	messageEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
)

// PairedTags lists the block tags whose open and close counts must match.
var PairedTags = []string{"if", "unless", "for", "case", "capture", "form", "paginate", "tablerow"}

type tagPattern struct {
	name    string
	open    *regexp.Regexp
	closing *regexp.Regexp
}

var pairedTagPatterns = func() []tagPattern {
	out := make([]tagPattern, 0, len(PairedTags))
	for _, tag := range PairedTags {
		out = append(out, tagPattern{
			name:    tag,
			open:    regexp.MustCompile(`\{%-?\s*` + tag + `\s`),
			closing: regexp.MustCompile(`\{%-?\s*end` + tag + `\s*-?%\}`),
		})
	}
	return out
}()

// Rules returns the default rule list in evaluation order.
func Rules() []Rule {
	return []Rule{
		{
			ID:          "schema-exists",
			Name:        "Schema block exists",
			Description: "Section must have a {% schema %} block",
			Severity:    SeverityError,
			Check:       checkSchemaExists,
		},
		{
			ID:          "schema-valid-json",
			Name:        "Valid JSON in schema",
			Description: "Schema block must contain valid JSON",
			Severity:    SeverityError,
			Check:       checkSchemaJSON,
		},
		{
			ID:          "schema-has-name",
			Name:        "Schema has name",
			Description: `Schema must include a "name" property`,
			Severity:    SeverityError,
			Check:       checkSchemaName,
		},
		{
			ID:          "schema-has-presets",
			Name:        "Schema has presets",
			Description: "Schema should include presets for theme editor",
			Severity:    SeverityWarning,
			Check:       checkPresets,
		},
		{
			ID:          "preset-matches-name",
			Name:        "Preset matches schema name",
			Description: "Preset name should match schema name",
			Severity:    SeverityWarning,
			Check:       checkPresetName,
		},
		{
			ID:          "number-defaults-are-numbers",
			Name:        "Number defaults are numbers",
			Description: "Number/range settings must have numeric defaults",
			Severity:    SeverityError,
			Check:       checkNumberDefaults,
		},
		{
			ID:          "range-has-required-props",
			Name:        "Range has min/max/step",
			Description: "Range settings must have min, max, and step",
			Severity:    SeverityError,
			Check:       checkRangeProps,
		},
		{
			ID:          "select-has-options",
			Name:        "Select has options",
			Description: "Select/radio settings must have options array",
			Severity:    SeverityError,
			Check:       checkSelectOptions,
		},
		{
			ID:          "css-uses-section-id",
			Name:        "CSS uses section ID",
			Description: "CSS should be scoped with section ID",
			Severity:    SeverityWarning,
			Check:       checkScopedCSS,
		},
		{
			ID:          "liquid-tags-balanced",
			Name:        "Liquid tags balanced",
			Description: "Opening and closing Liquid tags must match",
			Severity:    SeverityError,
			Check:       checkBalancedTags,
		},
	}
}

func checkSchemaExists(code string, _ *schema.Schema) Issue {
	if schemaBlockPattern.MatchString(code) {
		return Issue{Valid: true, Message: "Schema block found"}
	}
	return Issue{
		Message:    "Missing {% schema %} block",
		Suggestion: "Add {% schema %} ... {% endschema %} block",
	}
}

func checkSchemaJSON(code string, _ *schema.Schema) Issue {
	span, ok := schema.Locate(code)
	if !ok {
		return Issue{Message: "No schema block to validate"}
	}

	body := strings.TrimSpace(span.Body)
	var decoded any
	err := json.Unmarshal([]byte(body), &decoded)
	if err == nil {
		return Issue{Valid: true, Message: "Valid JSON"}
	}

	issue := Issue{
		Message:    "Invalid JSON: " + escape(err.Error()),
		Suggestion: "Check for trailing commas, missing quotes, or invalid syntax",
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		lead := len(span.Body) - len(strings.TrimLeft(span.Body, " \t\r\n"))
		issue.Line = lineAt(code, span.BodyStart+lead+int(syntaxErr.Offset))
	}
	return issue
}

func checkSchemaName(_ string, s *schema.Schema) Issue {
	if s == nil || s.Name == "" {
		return Issue{
			Message:    `Missing "name" property`,
			Suggestion: `Add "name": "Section Name" to schema`,
		}
	}
	return Issue{Valid: true, Message: fmt.Sprintf(`Section name: "%s"`, escape(s.Name))}
}

func checkPresets(_ string, s *schema.Schema) Issue {
	if s == nil || len(s.Presets) == 0 {
		return Issue{
			Message:    "No presets found",
			Suggestion: `Add "presets": [{"name": "Section Name"}] for theme editor`,
		}
	}
	return Issue{Valid: true, Message: "Presets defined"}
}

func checkPresetName(_ string, s *schema.Schema) Issue {
	if s == nil || s.Name == "" || len(s.Presets) == 0 || s.Presets[0].Name == "" {
		return Issue{Valid: true, Message: "Skipped (no name or preset)"}
	}
	if s.Presets[0].Name == s.Name {
		return Issue{Valid: true, Message: "Preset name matches"}
	}
	presetName := escape(s.Presets[0].Name)
	schemaName := escape(s.Name)
	return Issue{
		Message:    fmt.Sprintf(`Preset "%s" doesn't match schema "%s"`, presetName, schemaName),
		Suggestion: fmt.Sprintf(`Change preset name to "%s"`, schemaName),
	}
}

func checkNumberDefaults(_ string, s *schema.Schema) Issue {
	if s == nil || len(s.Settings) == 0 {
		return Issue{Valid: true, Message: "No settings to check"}
	}
	invalid := settingIDs(s.Settings, func(setting schema.Setting) bool {
		if setting.Type != schema.TypeNumber && setting.Type != schema.TypeRange {
			return false
		}
		if !setting.HasDefault {
			return false
		}
		_, numeric := setting.Default.(float64)
		return !numeric
	})
	if len(invalid) == 0 {
		return Issue{Valid: true, Message: "All number defaults are numbers"}
	}
	return Issue{
		Message:    "Settings with string defaults: " + strings.Join(invalid, ", "),
		Suggestion: `Change "default": "5" to "default": 5 (remove quotes)`,
	}
}

func checkRangeProps(_ string, s *schema.Schema) Issue {
	if s == nil || len(s.Settings) == 0 {
		return Issue{Valid: true, Message: "No settings to check"}
	}
	invalid := settingIDs(s.Settings, func(setting schema.Setting) bool {
		return setting.Type == schema.TypeRange &&
			(setting.Min == nil || setting.Max == nil || setting.Step == nil)
	})
	if len(invalid) == 0 {
		return Issue{Valid: true, Message: "All range settings have required props"}
	}
	return Issue{
		Message:    "Range settings missing props: " + strings.Join(invalid, ", "),
		Suggestion: "Add min, max, and step properties to range settings",
	}
}

func checkSelectOptions(_ string, s *schema.Schema) Issue {
	if s == nil || len(s.Settings) == 0 {
		return Issue{Valid: true, Message: "No settings to check"}
	}
	invalid := settingIDs(s.Settings, func(setting schema.Setting) bool {
		return (setting.Type == schema.TypeSelect || setting.Type == schema.TypeRadio) &&
			len(setting.Options) == 0
	})
	if len(invalid) == 0 {
		return Issue{Valid: true, Message: "All select settings have options"}
	}
	return Issue{
		Message:    "Settings missing options: " + strings.Join(invalid, ", "),
		Suggestion: `Add "options": [{"value": "x", "label": "X"}] to select settings`,
	}
}

func checkScopedCSS(code string, _ *schema.Schema) Issue {
	if !styleBlockPattern.MatchString(code) {
		return Issue{Valid: true, Message: "No style block"}
	}
	if sectionIDPattern.MatchString(code) {
		return Issue{Valid: true, Message: "CSS properly scoped"}
	}
	return Issue{
		Message:    "CSS not scoped with section ID",
		Suggestion: "Use #shopify-section-{{ section.id }} as root selector",
	}
}

func checkBalancedTags(code string, _ *schema.Schema) Issue {
	var problems []string
	for _, tag := range pairedTagPatterns {
		opened := len(tag.open.FindAllStringIndex(code, -1))
		closed := len(tag.closing.FindAllStringIndex(code, -1))
		if opened != closed {
			problems = append(problems, fmt.Sprintf("%s: %d open, %d close", tag.name, opened, closed))
		}
	}
	if len(problems) == 0 {
		return Issue{Valid: true, Message: "All tags balanced"}
	}
	return Issue{
		Message:    "Unbalanced tags: " + strings.Join(problems, "; "),
		Suggestion: "Check for missing {% end... %} tags",
	}
}

func settingIDs(settings []schema.Setting, match func(schema.Setting) bool) []string {
	var ids []string
	for _, setting := range settings {
		if match(setting) {
			ids = append(ids, escape(setting.ID))
		}
	}
	return ids
}

func escape(s string) string {
	return messageEscaper.Replace(s)
}

func lineAt(code string, offset int) int {
	offset = min(max(offset, 0), len(code))
	return strings.Count(code[:offset], "\n") + 1
}
