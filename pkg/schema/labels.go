package schema

import (
	"regexp"
	"strings"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/internal/labels"
)

const translationPrefix = "t:"

var (
	noiseSegments = map[string]bool{
		"label":       true,
		"name":        true,
		"info":        true,
		"placeholder": true,
		"sections":    true,
		"settings":    true,
		"blocks":      true,
	}
	optionSegment = regexp.MustCompile(`^options__\d+$`)
)

// ResolveLabel turns a translation key such as
// t:sections.hero.settings.button_text.label into "Button Text". Literal
// text is returned unchanged.
func ResolveLabel(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, translationPrefix) {
		return raw
	}

	key := strings.TrimPrefix(raw, translationPrefix)
	var meaningful []string
	for _, segment := range strings.Split(key, ".") {
		if segment == "" || noiseSegments[segment] || optionSegment.MatchString(segment) {
			continue
		}
		meaningful = append(meaningful, segment)
	}
	if len(meaningful) == 0 {
		return key
	}
	return labels.Humanize(meaningful[len(meaningful)-1])
}

// ExtractSettings returns the section settings with every label, info,
// placeholder and option label resolved.
func ExtractSettings(s *Schema) []Setting {
	if s == nil {
		return nil
	}
	return resolveSettings(s.Settings)
}

// ExtractBlocks returns block definitions with names and nested settings
// resolved.
func ExtractBlocks(s *Schema) []Block {
	if s == nil {
		return nil
	}
	out := make([]Block, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		b.Name = ResolveLabel(b.Name)
		b.Settings = resolveSettings(b.Settings)
		out = append(out, b)
	}
	return out
}

func resolveSettings(in []Setting) []Setting {
	out := make([]Setting, 0, len(in))
	for _, setting := range in {
		setting.Label = ResolveLabel(setting.Label)
		setting.Info = ResolveLabel(setting.Info)
		setting.Placeholder = ResolveLabel(setting.Placeholder)
		setting.Content = ResolveLabel(setting.Content)
		if len(setting.Options) > 0 {
			options := make([]Option, len(setting.Options))
			for i, opt := range setting.Options {
				options[i] = Option{Value: opt.Value, Label: ResolveLabel(opt.Label)}
			}
			setting.Options = options
		}
		out = append(out, setting)
	}
	return out
}
