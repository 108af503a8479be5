package drops

// Variant wraps a product variant attribute bag.
type Variant struct {
	attrs Attributes
}

// NewVariant wraps attrs. A nil bag yields a nil Variant.
func NewVariant(attrs Attributes) *Variant {
	if attrs == nil {
		return nil
	}
	return &Variant{attrs: attrs}
}

var variantFields = newAccessors(
	accessor[*Variant]{"id", func(v *Variant) any { return v.attrs.value("id") }},
	accessor[*Variant]{"title", func(v *Variant) any { return v.Title() }},
	accessor[*Variant]{"price", func(v *Variant) any { return v.Price() }},
	accessor[*Variant]{"available", func(v *Variant) any { return v.Available() }},
	accessor[*Variant]{"inventory_quantity", func(v *Variant) any { return v.attrs.Int("inventory_quantity") }},
	accessor[*Variant]{"sku", func(v *Variant) any { return v.attrs.String("sku") }},
	accessor[*Variant]{"option1", func(v *Variant) any { return stringOrNil(v.attrs, "option1") }},
	accessor[*Variant]{"option2", func(v *Variant) any { return stringOrNil(v.attrs, "option2") }},
	accessor[*Variant]{"option3", func(v *Variant) any { return stringOrNil(v.attrs, "option3") }},
	accessor[*Variant]{"selected", func(*Variant) any { return false }},
	accessor[*Variant]{"options", func(v *Variant) any { return v.Options() }},
)

func (v *Variant) Title() string   { return v.attrs.String("title") }
func (v *Variant) Price() int      { return v.attrs.Int("price") }
func (v *Variant) Available() bool { return v.attrs.Bool("available") }

// Option returns option1..option3 by 1-based position; unset options are "".
func (v *Variant) Option(pos int) string {
	switch pos {
	case 1:
		return v.attrs.String("option1")
	case 2:
		return v.attrs.String("option2")
	case 3:
		return v.attrs.String("option3")
	}
	return ""
}

// Options lists the non-empty option values in position order.
func (v *Variant) Options() []string {
	out := make([]string, 0, 3)
	for pos := 1; pos <= 3; pos++ {
		if opt := v.Option(pos); opt != "" {
			out = append(out, opt)
		}
	}
	return out
}

func (v *Variant) Get(name string) (any, bool) { return variantFields.get(v, name) }
func (v *Variant) Raw(name string) (any, bool) { return v.attrs.Lookup(name) }
func (v *Variant) RawKeys() []string           { return v.attrs.Keys() }
func (v *Variant) Fields() []string            { return variantFields.fields() }

func (v *Variant) String() string { return v.Title() }
