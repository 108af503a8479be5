package filters

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

var (
	htmlTag          = regexp.MustCompile(`<[^>]{0,1000}>`)
	newlineRun       = regexp.MustCompile(`[\r\n]+`)
	camelSeparator   = regexp.MustCompile(`[-_\s]+(.)?`)
	handleSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	escapedEntity    = regexp.MustCompile(`(?i)^&(amp|lt|gt|quot|#39|#\d+);`)
)

const (
	defaultTruncateLength = 50
	defaultEllipsis       = "..."
)

func stringFilters() Set {
	return Set{
		"escape_once":    func(in any, _ ...any) any { return EscapeOnce(limitText(in)) },
		"newline_to_br":  func(in any, _ ...any) any { return strings.ReplaceAll(Text(in), "\n", "<br>") },
		"strip_html":     func(in any, _ ...any) any { return htmlTag.ReplaceAllString(limitText(in), "") },
		"strip_newlines": func(in any, _ ...any) any { return newlineRun.ReplaceAllString(Text(in), "") },
		"url_encode":     func(in any, _ ...any) any { return EncodeURIComponent(Text(in)) },
		"url_decode": func(in any, _ ...any) any {
			s := Text(in)
			decoded, err := url.PathUnescape(s)
			if err != nil {
				return s
			}
			return decoded
		},
		"base64_encode": func(in any, _ ...any) any {
			return base64.StdEncoding.EncodeToString([]byte(limitText(in)))
		},
		"base64_decode": func(in any, _ ...any) any {
			s := Text(in)
			decoded, err := base64.StdEncoding.DecodeString(s)
			if err != nil || !utf8.Valid(decoded) {
				return s
			}
			return string(decoded)
		},
		"remove_first": func(in any, args ...any) any {
			return replaceOnce(Text(in), Text(arg(args, 0)), "", strings.Index)
		},
		"remove_last": func(in any, args ...any) any {
			return replaceOnce(Text(in), Text(arg(args, 0)), "", strings.LastIndex)
		},
		"replace_first": func(in any, args ...any) any {
			return replaceOnce(Text(in), Text(arg(args, 0)), Text(arg(args, 1)), strings.Index)
		},
		"replace_last": func(in any, args ...any) any {
			return replaceOnce(Text(in), Text(arg(args, 0)), Text(arg(args, 1)), strings.LastIndex)
		},
		"remove": func(in any, args ...any) any {
			return strings.ReplaceAll(Text(in), Text(arg(args, 0)), "")
		},
		"replace": func(in any, args ...any) any {
			return strings.ReplaceAll(Text(in), Text(arg(args, 0)), Text(arg(args, 1)))
		},
		"slice": func(in any, args ...any) any {
			if len(args) > 1 && args[1] != nil {
				return Slice(Text(in), int(Number(args[0])), int(Number(args[1])), true)
			}
			return Slice(Text(in), int(Number(arg(args, 0))), 0, false)
		},
		"camelize": func(in any, _ ...any) any { return Camelize(Text(in)) },
		"append":   func(in any, args ...any) any { return Text(in) + Text(arg(args, 0)) },
		"prepend":  func(in any, args ...any) any { return Text(arg(args, 0)) + Text(in) },
		"upcase":   func(in any, _ ...any) any { return strings.ToUpper(Text(in)) },
		"downcase": func(in any, _ ...any) any { return strings.ToLower(Text(in)) },
		"capitalize": func(in any, _ ...any) any {
			s := Text(in)
			r, size := utf8.DecodeRuneInString(s)
			if size == 0 {
				return s
			}
			return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
		},
		"strip":  func(in any, _ ...any) any { return strings.TrimSpace(Text(in)) },
		"lstrip": func(in any, _ ...any) any { return strings.TrimLeftFunc(Text(in), unicode.IsSpace) },
		"rstrip": func(in any, _ ...any) any { return strings.TrimRightFunc(Text(in), unicode.IsSpace) },
		"truncate": func(in any, args ...any) any {
			length := defaultTruncateLength
			if len(args) > 0 && args[0] != nil {
				length = int(Number(args[0]))
			}
			ellipsis := defaultEllipsis
			if len(args) > 1 && args[1] != nil {
				ellipsis = Text(args[1])
			}
			return Truncate(Text(in), length, ellipsis)
		},
		"handleize": func(in any, _ ...any) any { return Handleize(Text(in)) },
		"handle":    func(in any, _ ...any) any { return Handleize(Text(in)) },
		"json": func(in any, _ ...any) any {
			b, err := json.Marshal(Plain(in))
			if err != nil {
				return ""
			}
			return string(b)
		},
	}
}

// EscapeOnce HTML-escapes s without double-escaping existing entities.
func EscapeOnce(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if escapedEntity.MatchString(s[i:]) {
				b.WriteByte('&')
			} else {
				b.WriteString("&amp;")
			}
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// EncodeURIComponent percent-encodes everything except the unreserved marks
// A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func replaceOnce(s, old, replacement string, index func(string, string) int) string {
	idx := index(s, old)
	if idx < 0 {
		return s
	}
	return s[:idx] + replacement + s[idx+len(old):]
}

// Slice returns the runes of s from start, counting from the end when start
// is negative. Without a length the rest of the string is returned.
func Slice(s string, start, length int, hasLength bool) string {
	runes := []rune(s)
	if start < 0 {
		start = max(0, len(runes)+start)
	}
	if start > len(runes) {
		return ""
	}
	end := len(runes)
	if hasLength {
		if length <= 0 {
			return ""
		}
		end = min(len(runes), start+length)
	}
	return string(runes[start:end])
}

// Camelize removes -, _ and whitespace runs, upper-casing the following
// character.
func Camelize(s string) string {
	return camelSeparator.ReplaceAllStringFunc(s, func(match string) string {
		m := camelSeparator.FindStringSubmatch(match)
		return strings.ToUpper(m[1])
	})
}

// Truncate shortens s to length runes including the ellipsis.
func Truncate(s string, length int, ellipsis string) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	keep := length - utf8.RuneCountInString(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + ellipsis
}

// Handleize lower-cases s and joins alphanumeric runs with dashes.
func Handleize(s string) string {
	return strings.Trim(handleSeparators.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
