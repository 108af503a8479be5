package filters

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
)

// Input limits applied before filters walk user-controlled data.
const (
	MaxArraySize    = 10000
	MaxStringLength = 100000
)

// Func is an evaluator-neutral filter. input is the piped value and args the
// filter arguments in call order. Filters never fail; bad input degrades to a
// zero value or is passed through unchanged.
type Func func(input any, args ...any) any

// Set maps filter names to implementations.
type Set map[string]Func

// Names returns the filter names in lexical order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Merge returns a new Set with other's entries layered over s.
func (s Set) Merge(other Set) Set {
	out := make(Set, len(s)+len(other))
	for name, fn := range s {
		out[name] = fn
	}
	for name, fn := range other {
		out[name] = fn
	}
	return out
}

// Standard returns every storefront filter the preview supports.
func Standard() Set {
	set := Set{}
	for _, group := range []Set{coreFilters(), colorFilters(), fontFilters(), stringFilters(), mathFilters(), arrayFilters(), storefrontFilters()} {
		for name, fn := range group {
			set[name] = fn
		}
	}
	return set
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// Text converts a template value to its output string. Numbers print without
// trailing zeros and booleans print in lowercase.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case []any:
		var b strings.Builder
		for _, item := range t {
			b.WriteString(Text(item))
		}
		return b.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Number converts a template value to a float64; anything non-numeric is 0.
func Number(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case fmt.Stringer:
		return Number(t.String())
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		case reflect.Bool:
			if rv.Bool() {
				f = 1
			}
		case reflect.String:
			return Number(rv.String())
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// List converts a template value to a slice capped at MaxArraySize. Scalars
// and nil yield an empty slice.
func List(v any) []any {
	var out []any
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		out = t
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return []any{}
		}
		out = make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
	}
	if len(out) > MaxArraySize {
		out = out[:MaxArraySize]
	}
	return out
}

func limitText(v any) string {
	s := Text(v)
	if len(s) <= MaxStringLength {
		return s
	}
	cut := MaxStringLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// property reads key from a drop or a plain map.
func property(item any, key string) any {
	switch t := item.(type) {
	case drops.Drop:
		return drops.Resolve(t, key)
	case map[string]any:
		return t[key]
	case drops.Attributes:
		return t[key]
	}
	return nil
}

func isObject(item any) bool {
	switch item.(type) {
	case drops.Drop, map[string]any, drops.Attributes:
		return true
	}
	return false
}
