package drops

import (
	"encoding/json"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Attributes is the raw attribute bag of a fetched resource. Drops read
// their typed accessors from it and fall back to it for unknown names.
type Attributes map[string]any

// Lookup returns the raw value stored under key, as-is.
func (a Attributes) Lookup(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a[key]
	return v, ok
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// value returns the raw value or nil.
func (a Attributes) value(key string) any {
	v, _ := a.Lookup(key)
	return v
}

func (a Attributes) has(key string) bool {
	v, ok := a.Lookup(key)
	return ok && v != nil
}

// String returns the attribute as a string; non-strings yield "".
func (a Attributes) String(key string) string {
	switch v := a.value(key).(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Int returns the attribute as an int, accepting any numeric encoding the
// JSON and YAML decoders produce.
func (a Attributes) Int(key string) int {
	n, _ := toInt(a.value(key))
	return n
}

// OptionalInt distinguishes a missing or null attribute from zero.
func (a Attributes) OptionalInt(key string) (int, bool) {
	return toInt(a.value(key))
}

// Float returns the attribute as a float64.
func (a Attributes) Float(key string) float64 {
	f, _ := toFloat(a.value(key))
	return f
}

// Bool returns the attribute as a bool; non-bools yield false.
func (a Attributes) Bool(key string) bool {
	b, _ := a.value(key).(bool)
	return b
}

// Strings returns a string slice attribute, skipping non-string items.
func (a Attributes) Strings(key string) []string {
	switch v := a.value(key).(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// Map returns a nested attribute bag or nil.
func (a Attributes) Map(key string) Attributes {
	return toAttributes(a.value(key))
}

// Slice returns a list of nested attribute bags, skipping non-object items.
func (a Attributes) Slice(key string) []Attributes {
	switch v := a.value(key).(type) {
	case []Attributes:
		return v
	case []map[string]any:
		out := make([]Attributes, 0, len(v))
		for _, item := range v {
			out = append(out, Attributes(item))
		}
		return out
	case []any:
		out := make([]Attributes, 0, len(v))
		for _, item := range v {
			if m := toAttributes(item); m != nil {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func toAttributes(v any) Attributes {
	switch m := v.(type) {
	case Attributes:
		return m
	case map[string]any:
		return Attributes(m)
	default:
		return nil
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(math.Round(float64(n))), true
	case float64:
		return int(math.Round(n)), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(math.Round(f)), true
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	return 0, false
}
