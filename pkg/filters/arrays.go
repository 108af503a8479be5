package filters

import (
	"reflect"
	"slices"
	"strings"
)

func arrayFilters() Set {
	return Set{
		"compact": func(in any, _ ...any) any {
			out := []any{}
			for _, item := range List(in) {
				if item != nil {
					out = append(out, item)
				}
			}
			return out
		},
		"concat": func(in any, args ...any) any {
			return append(slices.Clone(List(in)), List(arg(args, 0))...)
		},
		"reverse": func(in any, _ ...any) any {
			out := slices.Clone(List(in))
			slices.Reverse(out)
			return out
		},
		"uniq": func(in any, _ ...any) any { return Uniq(List(in)) },
		"map": func(in any, args ...any) any {
			key := Text(arg(args, 0))
			items := List(in)
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = property(item, key)
			}
			return out
		},
		"sort": func(in any, args ...any) any {
			return Sort(List(in), Text(arg(args, 0)))
		},
		"sort_natural": func(in any, args ...any) any {
			return SortNatural(List(in), Text(arg(args, 0)))
		},
		"find": func(in any, args ...any) any {
			key, want := Text(arg(args, 0)), arg(args, 1)
			for _, item := range List(in) {
				if isObject(item) && looseEqual(property(item, key), want) {
					return item
				}
			}
			return nil
		},
		"reject": func(in any, args ...any) any {
			key, want := Text(arg(args, 0)), arg(args, 1)
			out := []any{}
			for _, item := range List(in) {
				if !isObject(item) || !looseEqual(property(item, key), want) {
					out = append(out, item)
				}
			}
			return out
		},
		"where": func(in any, args ...any) any {
			key := Text(arg(args, 0))
			out := []any{}
			for _, item := range List(in) {
				if !isObject(item) {
					continue
				}
				value := property(item, key)
				if len(args) < 2 {
					if truthy(value) {
						out = append(out, item)
					}
					continue
				}
				if looseEqual(value, args[1]) {
					out = append(out, item)
				}
			}
			return out
		},
		"size": func(in any, _ ...any) any { return Size(in) },
	}
}

// Uniq drops repeated items, keeping the first occurrence. Items that cannot
// be compared are always kept.
func Uniq(items []any) []any {
	seen := map[any]bool{}
	out := []any{}
	for _, item := range items {
		if item != nil && !reflect.TypeOf(item).Comparable() {
			out = append(out, item)
			continue
		}
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Sort orders items by key (or by value when key is empty). Strings compare
// lexically, everything else numerically.
func Sort(items []any, key string) []any {
	out := slices.Clone(items)
	value := func(item any) any {
		if key == "" {
			return item
		}
		return property(item, key)
	}
	slices.SortStableFunc(out, func(a, b any) int {
		if a == nil || b == nil {
			return 0
		}
		av, bv := value(a), value(b)
		as, aok := av.(string)
		bs, bok := bv.(string)
		if aok && bok {
			return strings.Compare(as, bs)
		}
		if key == "" {
			return strings.Compare(Text(av), Text(bv))
		}
		return compareFloat(Number(av), Number(bv))
	})
	return out
}

// SortNatural orders items case-insensitively by their text (or by key).
func SortNatural(items []any, key string) []any {
	out := slices.Clone(items)
	text := func(item any) string {
		if key != "" && item != nil {
			return strings.ToLower(Text(property(item, key)))
		}
		return strings.ToLower(Text(item))
	}
	slices.SortStableFunc(out, func(a, b any) int {
		return strings.Compare(text(a), text(b))
	})
	return out
}

// Size returns the rune count of strings and the length of lists and maps.
func Size(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		return len([]rune(t))
	case map[string]any:
		return len(t)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	case reflect.String:
		return len([]rune(rv.String()))
	}
	if n, ok := property(v, "size").(int); ok {
		return n
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if isNumeric(a) && isNumeric(b) {
		return Number(a) == Number(b)
	}
	return Text(a) == Text(b)
}

func isNumeric(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	}
	return true
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}
