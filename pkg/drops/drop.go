package drops

// Drop is the attribute resolution protocol every resource wrapper exposes
// to the template evaluator. Lookups are two-tier: Get answers the fixed set
// of typed accessors listed by Fields, Raw answers any other name straight
// from the fetched data. Neither tier fails; absence is reported with
// ok == false and a nil value.
type Drop interface {
	Get(name string) (any, bool)
	Raw(name string) (any, bool)
	Fields() []string
}

// RawKeyer is implemented by drops backed by an attribute bag. RawKeys lists
// every name the Raw tier can answer.
type RawKeyer interface {
	RawKeys() []string
}

// Names lists every name d can resolve: typed fields first, then raw keys
// not shadowed by a field.
func Names(d Drop) []string {
	if d == nil {
		return nil
	}
	names := d.Fields()
	rk, ok := d.(RawKeyer)
	if !ok {
		return names
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	for _, key := range rk.RawKeys() {
		if !seen[key] {
			names = append(names, key)
		}
	}
	return names
}

// Resolve performs the full lookup: typed accessor first, then the raw
// fallback. Unknown names resolve to nil.
func Resolve(d Drop, name string) any {
	if d == nil {
		return nil
	}
	if v, ok := d.Get(name); ok {
		return v
	}
	v, _ := d.Raw(name)
	return v
}

type accessor[T any] struct {
	name string
	get  func(T) any
}

// accessors is an ordered name → getter table shared by every instance of a
// drop type.
type accessors[T any] struct {
	names []string
	index map[string]func(T) any
}

func newAccessors[T any](list ...accessor[T]) accessors[T] {
	a := accessors[T]{
		names: make([]string, 0, len(list)),
		index: make(map[string]func(T) any, len(list)),
	}
	for _, item := range list {
		a.names = append(a.names, item.name)
		a.index[item.name] = item.get
	}
	return a
}

func (a accessors[T]) get(target T, name string) (any, bool) {
	fn, ok := a.index[name]
	if !ok {
		return nil, false
	}
	return fn(target), true
}

func (a accessors[T]) fields() []string {
	return append([]string(nil), a.names...)
}

// imageOrNil keeps typed nil pointers from leaking into interface values.
func imageOrNil(img *Image) any {
	if img == nil {
		return nil
	}
	return img
}

func variantOrNil(v *Variant) any {
	if v == nil {
		return nil
	}
	return v
}

func intOrNil(n int, ok bool) any {
	if !ok {
		return nil
	}
	return n
}

func stringOrNil(a Attributes, key string) any {
	if s, ok := a.value(key).(string); ok {
		return s
	}
	return nil
}
