package pongo

import (
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/filters"
)

// emptyValue and blankValue back the Liquid empty and blank literals.
type (
	emptyValue struct{}
	blankValue struct{}
)

// text renders a value the way Liquid prints it.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case emptyValue, blankValue:
		return ""
	case drops.Drop:
		if _, ok := t.(interface{ String() string }); !ok {
			return ""
		}
	}
	if isList(v) {
		var b strings.Builder
		for _, item := range filters.List(v) {
			b.WriteString(text(item))
		}
		return b.String()
	}
	return filters.Text(v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// truthy follows Liquid: only nil and false are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	}
	return !isNil(v)
}

// lookup resolves obj.key or obj[key]. Missing names and unsupported
// receivers resolve to nil.
func lookup(obj, key any) any {
	if obj == nil {
		return nil
	}
	if isList(obj) {
		items := filters.List(obj)
		if idx, ok := index(key); ok {
			if idx < 0 {
				idx += len(items)
			}
			if idx < 0 || idx >= len(items) {
				return nil
			}
			return items[idx]
		}
		return listProperty(items, filters.Text(key))
	}

	name := filters.Text(key)
	switch o := obj.(type) {
	case drops.Drop:
		if v, ok := o.Get(name); ok {
			return v
		}
		if v, ok := o.Raw(name); ok {
			return v
		}
		if name == "size" {
			return filters.Size(o)
		}
		return nil
	case map[string]any:
		if v, ok := o[name]; ok {
			return v
		}
		if name == "size" {
			return len(o)
		}
		return nil
	case drops.Attributes:
		if v, ok := o[name]; ok {
			return v
		}
		if name == "size" {
			return len(o)
		}
		return nil
	case string:
		switch name {
		case "size":
			return filters.Size(o)
		case "first":
			return filters.First(o)
		case "last":
			return filters.Last(o)
		}
		return nil
	}

	rv := reflect.Indirect(reflect.ValueOf(obj))
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		if v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key())); v.IsValid() {
			return v.Interface()
		}
	}
	return nil
}

func listProperty(items []any, name string) any {
	switch name {
	case "size":
		return len(items)
	case "first":
		return filters.First(items)
	case "last":
		return filters.Last(items)
	}
	return nil
}

func index(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int64:
		return int(k), true
	case float64:
		if k == math.Trunc(k) {
			return int(k), true
		}
	}
	return 0, false
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// iterate lists what a for loop walks over. Hashes yield [key, value]
// pairs; the section settings yield pairs in state order.
func iterate(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []any{t}
	case *drops.Collections:
		var out []any
		for col := range t.All() {
			out = append(out, col)
		}
		return out
	case *drops.SectionSettings:
		var out []any
		for key, value := range t.All() {
			out = append(out, []any{key, value})
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		out := make([]any, 0, len(keys))
		for _, key := range keys {
			out = append(out, []any{key, t[key]})
		}
		return out
	}
	return filters.List(v)
}

// window applies a loop's offset and limit. A negative limit means none.
func window(items []any, offset, limit int) []any {
	offset = max(offset, 0)
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// numberRange builds the inclusive integer range (from..to).
func numberRange(from, to any) []any {
	lo, hi := int(filters.Number(from)), int(filters.Number(to))
	if hi < lo {
		return []any{}
	}
	hi = min(hi, lo+filters.MaxArraySize-1)
	out := make([]any, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, n)
	}
	return out
}

func compare(op string, a, b any) bool {
	switch op {
	case "==":
		return equal(a, b)
	case "!=":
		return !equal(a, b)
	case "contains":
		return contains(a, b)
	}
	if isNumber(a) && isNumber(b) {
		x, y := filters.Number(a), filters.Number(b)
		switch op {
		case "<":
			return x < y
		case ">":
			return x > y
		case "<=":
			return x <= y
		case ">=":
			return x >= y
		}
	}
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		switch op {
		case "<":
			return sa < sb
		case ">":
			return sa > sb
		case "<=":
			return sa <= sb
		case ">=":
			return sa >= sb
		}
	}
	return false
}

func equal(a, b any) bool {
	switch b.(type) {
	case emptyValue:
		return isEmpty(a)
	case blankValue:
		return filters.Blank(a)
	}
	switch a.(type) {
	case emptyValue, blankValue:
		return equal(b, a)
	}
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if isNumber(a) && isNumber(b) {
		return filters.Number(a) == filters.Number(b)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta.Comparable() && tb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case string:
		return t == ""
	case *drops.Collections:
		return t.Len() == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

func contains(haystack, needle any) bool {
	switch h := haystack.(type) {
	case nil:
		return false
	case string:
		return strings.Contains(h, text(needle))
	case map[string]any:
		_, ok := h[text(needle)]
		return ok
	case drops.Drop:
		return slices.Contains(drops.Names(h), text(needle))
	}
	for _, item := range filters.List(haystack) {
		if equal(item, needle) {
			return true
		}
	}
	return false
}

func isNumber(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// variable reads a context name pongo2 cannot spell as an identifier.
func variable(ctx *pongo2.ExecutionContext, name any) any {
	key := text(name)
	if v, ok := ctx.Private[key]; ok {
		return unwrap(v)
	}
	return unwrap(ctx.Public[key])
}

func unwrap(v any) any {
	if pv, ok := v.(*pongo2.Value); ok {
		return pv.Interface()
	}
	return v
}
