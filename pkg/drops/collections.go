package drops

import "iter"

// Collections is the global collections index. Any handle resolves: unknown
// handles fall back to the default collection so templates written against a
// live store still render in preview.
type Collections struct {
	fallback *Collection
	order    []string
	byHandle map[string]*Collection
}

// NewCollections indexes the default collection and any additional ones by
// handle. Later collections with a duplicate handle replace earlier ones.
func NewCollections(defaultCollection Attributes, additional ...Attributes) *Collections {
	c := &Collections{byHandle: map[string]*Collection{}}
	c.fallback = NewCollection(defaultCollection)
	if c.fallback == nil {
		c.fallback = NewCollection(Attributes{})
	}
	c.add(c.fallback)
	for _, attrs := range additional {
		if col := NewCollection(attrs); col != nil {
			c.add(col)
		}
	}
	return c
}

func (c *Collections) add(col *Collection) {
	handle := col.Handle()
	if _, ok := c.byHandle[handle]; !ok {
		c.order = append(c.order, handle)
	}
	c.byHandle[handle] = col
}

// Lookup returns the collection registered under handle, else the default.
func (c *Collections) Lookup(handle string) *Collection {
	if col, ok := c.byHandle[handle]; ok {
		return col
	}
	return c.fallback
}

// Default returns the fallback collection.
func (c *Collections) Default() *Collection { return c.fallback }

// Len is the number of distinct registered handles.
func (c *Collections) Len() int { return len(c.order) }

// Handles lists registered handles in registration order.
func (c *Collections) Handles() []string {
	return append([]string(nil), c.order...)
}

// All yields the registered collections in registration order.
func (c *Collections) All() iter.Seq[*Collection] {
	return func(yield func(*Collection) bool) {
		for _, handle := range c.order {
			if !yield(c.byHandle[handle]) {
				return
			}
		}
	}
}

// Get answers a registered handle first, then size, then the fallback
// collection; it never reports a miss.
func (c *Collections) Get(name string) (any, bool) {
	if col, ok := c.byHandle[name]; ok {
		return col, true
	}
	if name == "size" {
		return c.Len(), true
	}
	return c.fallback, true
}

func (c *Collections) Raw(string) (any, bool) { return nil, false }

// Fields lists the registered handles followed by size.
func (c *Collections) Fields() []string {
	return append(c.Handles(), "size")
}
