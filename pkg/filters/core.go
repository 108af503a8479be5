package filters

import (
	"fmt"
	"html"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

const placeholderSVG = `<svg class="placeholder-svg" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 525.5 525.5"><rect width="525.5" height="525.5" fill="#e1e3e5"/></svg>`

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func coreFilters() Set {
	return Set{
		"default": func(in any, args ...any) any {
			if Blank(in) {
				return arg(args, 0)
			}
			return in
		},
		"first": func(in any, _ ...any) any { return First(in) },
		"last":  func(in any, _ ...any) any { return Last(in) },
		"join": func(in any, args ...any) any {
			sep := " "
			if len(args) > 0 {
				sep = Text(args[0])
			}
			items := List(in)
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = Text(item)
			}
			return limitText(strings.Join(parts, sep))
		},
		"split": func(in any, args ...any) any {
			s := limitText(in)
			sep := Text(arg(args, 0))
			var parts []string
			if sep == "" {
				parts = strings.Split(s, "")
			} else {
				parts = strings.Split(s, sep)
			}
			out := make([]any, 0, len(parts))
			for _, p := range parts {
				out = append(out, p)
			}
			return List(out)
		},
		"escape": func(in any, _ ...any) any { return html.EscapeString(limitText(in)) },
		"date": func(in any, args ...any) any {
			t, ok := parseDate(in)
			if !ok {
				return in
			}
			return Strftime(t, Text(arg(args, 0)))
		},
		"t": func(in any, _ ...any) any {
			key := Text(in)
			if key == "" {
				return ""
			}
			return schema.ResolveLabel("t:" + key)
		},
		"asset_url":     func(in any, _ ...any) any { return "/assets/" + Text(in) },
		"asset_img_url": func(in any, _ ...any) any { return "/assets/" + Text(in) },
		"file_url":      func(in any, _ ...any) any { return "/files/" + Text(in) },
		"link_to": func(in any, args ...any) any {
			return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(Text(arg(args, 0))), Text(in))
		},
		"placeholder_svg_tag": func(in any, args ...any) any {
			if class := Text(arg(args, 0)); class != "" {
				return strings.Replace(placeholderSVG, `class="placeholder-svg"`, `class="`+html.EscapeString(class)+`"`, 1)
			}
			return placeholderSVG
		},
		"stylesheet_tag": func(in any, _ ...any) any {
			return fmt.Sprintf(`<link href="%s" rel="stylesheet" type="text/css" media="all">`, html.EscapeString(Text(in)))
		},
		"script_tag": func(in any, _ ...any) any {
			return fmt.Sprintf(`<script src="%s" type="text/javascript"></script>`, html.EscapeString(Text(in)))
		},
		"pluralize": func(in any, args ...any) any {
			if Number(in) == 1 {
				return arg(args, 0)
			}
			return arg(args, 1)
		},
	}
}

// Blank reports whether v is nil, false, an empty string or an empty
// collection.
func Blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return strings.TrimSpace(t) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// First returns the first element of a list or the first character of a
// string.
func First(v any) any {
	if s, ok := v.(string); ok {
		for _, r := range s {
			return string(r)
		}
		return ""
	}
	items := List(v)
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

// Last returns the last element of a list or the last character of a
// string.
func Last(v any) any {
	if s, ok := v.(string); ok {
		runes := []rune(s)
		if len(runes) == 0 {
			return ""
		}
		return string(runes[len(runes)-1])
	}
	items := List(v)
	if len(items) == 0 {
		return nil
	}
	return items[len(items)-1]
}

func parseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case int, int64, float64:
		return time.Unix(int64(Number(t)), 0).UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "now" || s == "today" {
			return time.Now(), true
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(n, 0).UTC(), true
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// Strftime formats t using the common strftime directives. Unknown
// directives are copied through.
func Strftime(t time.Time, format string) string {
	if format == "" {
		return t.Format("January 02, 2006")
	}
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			continue
		}
		i++
		pad := true
		if format[i] == '-' && i+1 < len(format) {
			pad = false
			i++
		}
		two := func(n int) string {
			if pad {
				return fmt.Sprintf("%02d", n)
			}
			return strconv.Itoa(n)
		}
		switch format[i] {
		case 'Y':
			b.WriteString(strconv.Itoa(t.Year()))
		case 'y':
			b.WriteString(fmt.Sprintf("%02d", t.Year()%100))
		case 'm':
			b.WriteString(two(int(t.Month())))
		case 'd':
			b.WriteString(two(t.Day()))
		case 'e':
			b.WriteString(fmt.Sprintf("%2d", t.Day()))
		case 'B':
			b.WriteString(t.Month().String())
		case 'b', 'h':
			b.WriteString(t.Month().String()[:3])
		case 'A':
			b.WriteString(t.Weekday().String())
		case 'a':
			b.WriteString(t.Weekday().String()[:3])
		case 'H':
			b.WriteString(two(t.Hour()))
		case 'I':
			hour := t.Hour() % 12
			if hour == 0 {
				hour = 12
			}
			b.WriteString(two(hour))
		case 'M':
			b.WriteString(two(t.Minute()))
		case 'S':
			b.WriteString(two(t.Second()))
		case 'p':
			if t.Hour() < 12 {
				b.WriteString("AM")
			} else {
				b.WriteString("PM")
			}
		case 'j':
			b.WriteString(fmt.Sprintf("%03d", t.YearDay()))
		case 'Z':
			b.WriteString(t.Format("MST"))
		case 'z':
			b.WriteString(t.Format("-0700"))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			if !pad {
				b.WriteByte('-')
			}
			b.WriteByte(format[i])
		}
	}
	return b.String()
}
