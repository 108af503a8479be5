package filters

import (
	"math"
	"strconv"
	"strings"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
)

// Money formats used when no shop format is supplied.
const (
	DefaultMoneyFormat = "${{amount}}"
	DefaultCurrency    = "USD"
)

func storefrontFilters() Set {
	return Set{
		"money": func(in any, args ...any) any {
			return Money(Number(in), moneyFormat(args))
		},
		"money_with_currency": func(in any, args ...any) any {
			return Money(Number(in), moneyFormat(args)) + " " + DefaultCurrency
		},
		"money_without_currency": func(in any, _ ...any) any {
			return formatAmount(Number(in), 2, ",", ".")
		},
		"money_without_trailing_zeros": func(in any, args ...any) any {
			out := Money(Number(in), moneyFormat(args))
			return strings.TrimSuffix(out, ".00")
		},
		"img_url":   func(in any, _ ...any) any { return ImageURL(in) },
		"image_url": func(in any, _ ...any) any { return ImageURL(in) },
	}
}

func moneyFormat(args []any) string {
	if f := Text(arg(args, 0)); strings.Contains(f, "{{") {
		return f
	}
	return DefaultMoneyFormat
}

// Money renders cents through a storefront money format. The format accepts
// amount, amount_no_decimals, amount_with_comma_separator and
// amount_no_decimals_with_comma_separator placeholders.
func Money(cents float64, format string) string {
	replacer := strings.NewReplacer(
		"{{amount}}", formatAmount(cents, 2, ",", "."),
		"{{ amount }}", formatAmount(cents, 2, ",", "."),
		"{{amount_no_decimals}}", formatAmount(cents, 0, ",", "."),
		"{{ amount_no_decimals }}", formatAmount(cents, 0, ",", "."),
		"{{amount_with_comma_separator}}", formatAmount(cents, 2, ".", ","),
		"{{ amount_with_comma_separator }}", formatAmount(cents, 2, ".", ","),
		"{{amount_no_decimals_with_comma_separator}}", formatAmount(cents, 0, ".", ","),
		"{{ amount_no_decimals_with_comma_separator }}", formatAmount(cents, 0, ".", ","),
	)
	return replacer.Replace(format)
}

func formatAmount(cents float64, decimals int, thousands, decimal string) string {
	value := cents / 100
	negative := value < 0
	value = math.Abs(value)
	fixed := strconv.FormatFloat(Round(value, decimals), 'f', decimals, 64)

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(thousands)
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += decimal + frac
	}
	if negative {
		out = "-" + out
	}
	return out
}

// ImageURL resolves an image, product, collection or URL string to a source
// URL. The preview has no image CDN, so size arguments are ignored.
func ImageURL(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *drops.Image:
		if t == nil {
			return ""
		}
		return t.Src()
	case *drops.Product:
		if t == nil || t.FeaturedImage() == nil {
			return ""
		}
		return t.FeaturedImage().Src()
	case *drops.Collection:
		if t == nil || t.FeaturedImage() == nil {
			return ""
		}
		return t.FeaturedImage().Src()
	case *drops.Variant:
		return ""
	}
	if src := property(v, "src"); src != nil {
		return Text(src)
	}
	return ""
}

const plainDepth = 6

// Plain converts drops to nested maps and slices so they can be encoded.
// Nesting deeper than a few levels is cut off with nil.
func Plain(v any) any {
	return plain(v, plainDepth)
}

func plain(v any, depth int) any {
	if depth < 0 {
		return nil
	}
	switch t := v.(type) {
	case LegacyFont:
		return map[string]any{"family": t.Family, "style": t.Style, "weight": t.Weight, "src": t.Src, "format": t.Format}
	case DescriptorFont:
		return plain(t.Font, depth)
	case drops.Drop:
		out := map[string]any{}
		for _, name := range t.Fields() {
			out[name] = plain(drops.Resolve(t, name), depth-1)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plain(item, depth-1)
		}
		return out
	case drops.Attributes:
		return plain(map[string]any(t), depth)
	case string, bool, nil:
		return t
	}
	if isNumeric(v) {
		return v
	}
	items := List(v)
	if len(items) > 0 || isList(v) {
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = plain(item, depth-1)
		}
		return out
	}
	return Text(v)
}
