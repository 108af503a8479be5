package drops

const defaultVariantTitle = "Default Title"

// OptionValues is a product option name with the distinct values its
// variants use, in first-seen order.
type OptionValues struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Product wraps a product attribute bag. Images and variants are wrapped once
// at construction.
type Product struct {
	attrs    Attributes
	featured *Image
	images   []*Image
	variants []*Variant
}

// NewProduct wraps attrs. A nil bag yields a nil Product.
func NewProduct(attrs Attributes) *Product {
	if attrs == nil {
		return nil
	}
	p := &Product{attrs: attrs, featured: NewImage(attrs.Map("featured_image"))}
	for _, img := range attrs.Slice("images") {
		p.images = append(p.images, NewImage(img))
	}
	for _, v := range attrs.Slice("variants") {
		p.variants = append(p.variants, NewVariant(v))
	}
	return p
}

var productFields = newAccessors(
	accessor[*Product]{"id", func(p *Product) any { return p.attrs.value("id") }},
	accessor[*Product]{"title", func(p *Product) any { return p.Title() }},
	accessor[*Product]{"handle", func(p *Product) any { return p.Handle() }},
	accessor[*Product]{"description", func(p *Product) any { return p.Description() }},
	accessor[*Product]{"vendor", func(p *Product) any { return p.attrs.String("vendor") }},
	accessor[*Product]{"type", func(p *Product) any { return p.attrs.String("type") }},
	accessor[*Product]{"url", func(p *Product) any { return p.attrs.String("url") }},
	accessor[*Product]{"price", func(p *Product) any { return p.Price() }},
	accessor[*Product]{"price_min", func(p *Product) any { return p.attrs.Int("price_min") }},
	accessor[*Product]{"price_max", func(p *Product) any { return p.attrs.Int("price_max") }},
	accessor[*Product]{"compare_at_price", func(p *Product) any { return intOrNil(p.CompareAtPrice()) }},
	accessor[*Product]{"compare_at_price_min", func(p *Product) any { return intOrNil(p.CompareAtPrice()) }},
	accessor[*Product]{"compare_at_price_max", func(p *Product) any { return intOrNil(p.CompareAtPrice()) }},
	accessor[*Product]{"available", func(p *Product) any { return p.attrs.Bool("available") }},
	accessor[*Product]{"inventory_quantity", func(p *Product) any { return p.attrs.Int("inventory_quantity") }},
	accessor[*Product]{"featured_image", func(p *Product) any { return imageOrNil(p.featured) }},
	accessor[*Product]{"images", func(p *Product) any { return p.Images() }},
	accessor[*Product]{"first_available_image", func(p *Product) any { return imageOrNil(p.FirstAvailableImage()) }},
	accessor[*Product]{"variants", func(p *Product) any { return p.Variants() }},
	accessor[*Product]{"selected_variant", func(p *Product) any { return variantOrNil(p.SelectedVariant()) }},
	accessor[*Product]{"selected_or_first_available_variant", func(p *Product) any { return variantOrNil(p.SelectedVariant()) }},
	accessor[*Product]{"first_available_variant", func(p *Product) any { return variantOrNil(p.FirstAvailableVariant()) }},
	accessor[*Product]{"has_only_default_variant", func(p *Product) any { return p.HasOnlyDefaultVariant() }},
	accessor[*Product]{"tags", func(p *Product) any { return p.Tags() }},
	accessor[*Product]{"options", func(p *Product) any { return p.attrs.Strings("options") }},
	accessor[*Product]{"options_with_values", func(p *Product) any { return p.OptionsWithValues() }},
	accessor[*Product]{"on_sale", func(p *Product) any { return p.OnSale() }},
	accessor[*Product]{"price_varies", func(p *Product) any { return p.attrs.Int("price_min") != p.attrs.Int("price_max") }},
	accessor[*Product]{"compare_at_price_varies", func(*Product) any { return false }},
	accessor[*Product]{"content", func(p *Product) any { return p.Description() }},
)

func (p *Product) Title() string       { return p.attrs.String("title") }
func (p *Product) Handle() string      { return p.attrs.String("handle") }
func (p *Product) Description() string { return p.attrs.String("description") }
func (p *Product) Price() int          { return p.attrs.Int("price") }
func (p *Product) Tags() []string      { return p.attrs.Strings("tags") }

// CompareAtPrice reports false when the product has no compare-at price.
func (p *Product) CompareAtPrice() (int, bool) {
	return p.attrs.OptionalInt("compare_at_price")
}

// OnSale is true when a compare-at price exists and exceeds the price.
func (p *Product) OnSale() bool {
	compare, ok := p.CompareAtPrice()
	return ok && compare > p.Price()
}

func (p *Product) FeaturedImage() *Image { return p.featured }

func (p *Product) Images() []*Image {
	return append([]*Image{}, p.images...)
}

func (p *Product) FirstAvailableImage() *Image {
	if len(p.images) == 0 {
		return nil
	}
	return p.images[0]
}

func (p *Product) Variants() []*Variant {
	return append([]*Variant{}, p.variants...)
}

// SelectedVariant is the first available variant, else the first variant.
func (p *Product) SelectedVariant() *Variant {
	if v := p.FirstAvailableVariant(); v != nil {
		return v
	}
	if len(p.variants) > 0 {
		return p.variants[0]
	}
	return nil
}

func (p *Product) FirstAvailableVariant() *Variant {
	for _, v := range p.variants {
		if v.Available() {
			return v
		}
	}
	return nil
}

func (p *Product) HasOnlyDefaultVariant() bool {
	return len(p.variants) == 1 && p.variants[0].Title() == defaultVariantTitle
}

// OptionsWithValues pairs each option name with the distinct values found
// at the same position across variants.
func (p *Product) OptionsWithValues() []OptionValues {
	names := p.attrs.Strings("options")
	out := make([]OptionValues, len(names))
	seen := make([]map[string]bool, len(names))
	for i, name := range names {
		out[i] = OptionValues{Name: name, Values: []string{}}
		seen[i] = map[string]bool{}
	}
	for _, v := range p.variants {
		for i := 0; i < len(names) && i < 3; i++ {
			value := v.Option(i + 1)
			if value == "" || seen[i][value] {
				continue
			}
			seen[i][value] = true
			out[i].Values = append(out[i].Values, value)
		}
	}
	return out
}

func (p *Product) Get(name string) (any, bool) { return productFields.get(p, name) }
func (p *Product) Raw(name string) (any, bool) { return p.attrs.Lookup(name) }
func (p *Product) RawKeys() []string           { return p.attrs.Keys() }
func (p *Product) Fields() []string            { return productFields.fields() }

func (p *Product) String() string { return p.Title() }
