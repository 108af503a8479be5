package filters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"
)

const (
	defaultFontFormat = "woff2"
	fontPreviewCDN    = "https://fonts.shopifycdn.com/preview/"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FontValue is either a registry-backed font (DescriptorFont) or a loose
// bag of font fields handed in by a template (LegacyFont).
type FontValue interface {
	fontValue()
}

// DescriptorFont wraps a font drop.
type DescriptorFont struct {
	Font *drops.Font
}

// LegacyFont carries font fields from a plain object. Empty fields are unset;
// Weight keeps the caller's spelling.
type LegacyFont struct {
	Family           string
	FallbackFamilies string
	Stack            string
	Style            string
	Weight           string
	Src              string
	Format           string
}

func (DescriptorFont) fontValue() {}
func (LegacyFont) fontValue()     {}

var _ drops.Drop = LegacyFont{}

var legacyFontFields = []string{"family", "fallback_families", "stack", "style", "weight", "src", "format"}

// Get exposes the set fields under their template names.
func (l LegacyFont) Get(name string) (any, bool) {
	var v string
	switch name {
	case "family":
		v = l.Family
	case "fallback_families":
		v = l.FallbackFamilies
	case "stack":
		v = l.Stack
	case "style":
		v = l.Style
	case "weight":
		v = l.Weight
	case "src":
		v = l.Src
	case "format":
		v = l.Format
	}
	return v, v != ""
}

func (l LegacyFont) Raw(string) (any, bool) { return nil, false }

func (l LegacyFont) Fields() []string { return legacyFontFields }

func (l LegacyFont) String() string {
	if l.Stack != "" {
		return l.Stack
	}
	return l.Family
}

// templateValue is what a filter hands back to a template: the font drop
// itself, or the loose font which is a drop of its own.
func templateValue(v FontValue) any {
	if d, ok := v.(DescriptorFont); ok {
		return d.Font
	}
	return v
}

// AsFontValue classifies a template value. The boolean is false for nil and
// for values that cannot describe a font.
func AsFontValue(v any) (FontValue, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case FontValue:
		if d, ok := t.(DescriptorFont); ok && d.Font == nil {
			return nil, false
		}
		return t, true
	case *drops.Font:
		if t == nil {
			return nil, false
		}
		return DescriptorFont{Font: t}, true
	case fonts.Descriptor:
		return DescriptorFont{Font: drops.NewFont(t)}, true
	case drops.Attributes:
		return legacyFromMap(t), true
	case map[string]any:
		return legacyFromMap(t), true
	}
	return nil, false
}

func legacyFromMap(m map[string]any) LegacyFont {
	str := func(key string) string {
		if v, ok := m[key]; ok && v != nil {
			return Text(v)
		}
		return ""
	}
	return LegacyFont{
		Family:           str("family"),
		FallbackFamilies: str("fallback_families"),
		Stack:            str("stack"),
		Style:            str("style"),
		Weight:           str("weight"),
		Src:              str("src"),
		Format:           str("format"),
	}
}

// FontFace renders an @font-face declaration. Registry fonts without a
// source are web-safe and render as a CSS comment instead.
func FontFace(v FontValue) string {
	switch f := v.(type) {
	case DescriptorFont:
		d := f.Font.Descriptor()
		if d.Src == "" {
			return fmt.Sprintf("/* %s is a web-safe font */", d.Family)
		}
		return fontFaceWithSource(d.Family, d.Src, d.Format, strconv.Itoa(d.Weight), d.Style)
	case LegacyFont:
		family := orDefault(f.Family, "sans-serif")
		weight := orDefault(f.Weight, "400")
		style := orDefault(f.Style, "normal")
		if f.Src == "" {
			return "@font-face {\n" +
				"  font-family: \"" + family + "\";\n" +
				"  font-weight: " + weight + ";\n" +
				"  font-style: " + style + ";\n" +
				"  font-display: swap;\n" +
				"  src: local(\"" + family + "\");\n" +
				"}"
		}
		return fontFaceWithSource(family, f.Src, f.Format, weight, style)
	}
	return ""
}

func fontFaceWithSource(family, src, format, weight, style string) string {
	return "@font-face {\n" +
		"  font-family: \"" + family + "\";\n" +
		"  src: url(\"" + src + "\") format(\"" + orDefault(format, defaultFontFormat) + "\");\n" +
		"  font-weight: " + weight + ";\n" +
		"  font-style: " + style + ";\n" +
		"  font-display: swap;\n" +
		"}"
}

// FontURL returns the font file URL. Loose fonts without a source get a
// predictable CDN preview URL derived from the family name.
func FontURL(v FontValue, format string) string {
	switch f := v.(type) {
	case DescriptorFont:
		return f.Font.Descriptor().Src
	case LegacyFont:
		if f.Src != "" {
			return f.Src
		}
		family := strings.ToLower(orDefault(f.Family, "arial"))
		family = whitespaceRun.ReplaceAllString(family, "-")
		return fontPreviewCDN + family + "." + orDefault(format, defaultFontFormat)
	}
	return ""
}

// FontModify returns a copy of v with weight or style replaced. Weight
// accepts bold, normal or a number; unparseable weights leave the weight
// unchanged. A nil font yields a bare sans-serif LegacyFont.
func FontModify(v FontValue, attribute string, value any) FontValue {
	switch f := v.(type) {
	case DescriptorFont:
		d := f.Font.Descriptor()
		switch attribute {
		case "weight":
			if w, ok := parseWeight(value); ok {
				d.Weight = w
			}
		case "style":
			d.Style = Text(value)
		}
		return DescriptorFont{Font: drops.NewFont(d)}
	case LegacyFont:
		switch attribute {
		case "weight":
			if w, ok := parseWeight(value); ok {
				f.Weight = strconv.Itoa(w)
			}
		case "style":
			f.Style = Text(value)
		}
		return f
	}
	return LegacyFont{Family: "sans-serif"}
}

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

func parseWeight(value any) (int, bool) {
	switch t := value.(type) {
	case string:
		switch t {
		case "bold":
			return 700, true
		case "normal":
			return 400, true
		}
		m := leadingInt.FindStringSubmatch(t)
		if m == nil {
			return 0, false
		}
		n, err := strconv.Atoi(m[1])
		return n, err == nil
	case nil:
		return 0, false
	}
	return int(Number(value)), true
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func fontFilters() Set {
	return Set{
		"font_face": func(in any, _ ...any) any {
			f, ok := AsFontValue(in)
			if !ok {
				return ""
			}
			return FontFace(f)
		},
		"font_url": func(in any, args ...any) any {
			f, ok := AsFontValue(in)
			if !ok {
				return ""
			}
			return FontURL(f, Text(arg(args, 0)))
		},
		"font_modify": func(in any, args ...any) any {
			f, _ := AsFontValue(in)
			return templateValue(FontModify(f, Text(arg(args, 0)), arg(args, 1)))
		},
	}
}
