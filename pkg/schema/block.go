package schema

import (
	"regexp"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

var blockPattern = regexp.MustCompile(`(?s)\{%-?\s*schema\s*-?%\}(.*?)\{%-?\s*endschema\s*-?%\}`)

// Span locates the configuration block within section code. Offsets are
// byte positions; Body is the text between the markers.
type Span struct {
	Start     int
	End       int
	BodyStart int
	Body      string
}

// Locate finds the first configuration block in code.
func Locate(code string) (Span, bool) {
	m := blockPattern.FindStringSubmatchIndex(code)
	if m == nil {
		return Span{}, false
	}
	return Span{Start: m[0], End: m[1], BodyStart: m[2], Body: code[m[2]:m[3]]}, true
}

// Strip removes every configuration block from code.
func Strip(code string) string {
	return blockPattern.ReplaceAllString(code, "")
}

// Parse decodes the first configuration block. It returns nil, not an error,
// when the block is absent or its JSON is malformed.
func Parse(code string) *Schema {
	span, ok := Locate(code)
	if !ok {
		return nil
	}
	s, err := Decode(span.Body)
	if err != nil {
		return nil
	}
	return s
}

// Decode parses a configuration block body. Fields decode one at a time, so
// a field of an unexpected type is dropped rather than the whole schema.
// Display text given as a locale object resolves to its en entry; the
// section name is left unresolved and must be a plain string.
func Decode(body string) (*Schema, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &raw); err != nil {
		return nil, err
	}

	s := &Schema{}
	decodeInto(raw["name"], &s.Name)
	decodeInto(raw["tag"], &s.Tag)
	decodeInto(raw["class"], &s.Class)
	decodeInto(raw["limit"], &s.Limit)
	decodeInto(raw["max_blocks"], &s.MaxBlocks)

	localizeSettings(raw["settings"])
	s.Settings = decodeList[Setting](raw["settings"])

	for _, item := range objects(raw["blocks"]) {
		localize(item, "name")
		localizeSettings(item["settings"])
	}
	s.Blocks = decodeList[Block](raw["blocks"])

	for _, item := range objects(raw["presets"]) {
		localize(item, "name", "category")
	}
	s.Presets = decodeList[Preset](raw["presets"])
	return s, nil
}

func decodeInto(v, target any) bool {
	if v == nil {
		return false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, target) == nil
}

// decodeList keeps the elements that decode. Absent or non-list values
// yield nil.
func decodeList[T any](v any) []T {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var t T
		if decodeInto(item, &t) {
			out = append(out, t)
		}
	}
	return out
}

func objects(v any) []map[string]any {
	items, _ := v.([]any)
	var out []map[string]any
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func localizeSettings(v any) {
	for _, setting := range objects(v) {
		localize(setting, "label", "info", "placeholder", "content", "unit")
		for _, option := range objects(setting["options"]) {
			localize(option, "label")
		}
	}
}

// localize replaces locale objects under keys with their en text, or the
// first text entry by locale code.
func localize(m map[string]any, keys ...string) {
	for _, key := range keys {
		locales, ok := m[key].(map[string]any)
		if !ok {
			continue
		}
		if en, ok := locales["en"].(string); ok {
			m[key] = en
			continue
		}
		codes := make([]string, 0, len(locales))
		for code := range locales {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		delete(m, key)
		for _, code := range codes {
			if text, ok := locales[code].(string); ok {
				m[key] = text
				break
			}
		}
	}
}
