package drops

const defaultSortOrder = "manual"

// Collection wraps a collection attribute bag and its member products.
type Collection struct {
	attrs    Attributes
	image    *Image
	products []*Product
}

// NewCollection wraps attrs. A nil bag yields a nil Collection.
func NewCollection(attrs Attributes) *Collection {
	if attrs == nil {
		return nil
	}
	c := &Collection{attrs: attrs, image: NewImage(attrs.Map("image"))}
	for _, p := range attrs.Slice("products") {
		c.products = append(c.products, NewProduct(p))
	}
	return c
}

var collectionFields = newAccessors(
	accessor[*Collection]{"id", func(c *Collection) any { return c.attrs.value("id") }},
	accessor[*Collection]{"title", func(c *Collection) any { return c.Title() }},
	accessor[*Collection]{"handle", func(c *Collection) any { return c.Handle() }},
	accessor[*Collection]{"description", func(c *Collection) any { return c.attrs.String("description") }},
	accessor[*Collection]{"url", func(c *Collection) any { return c.attrs.String("url") }},
	accessor[*Collection]{"image", func(c *Collection) any { return imageOrNil(c.image) }},
	accessor[*Collection]{"featured_image", func(c *Collection) any { return imageOrNil(c.FeaturedImage()) }},
	accessor[*Collection]{"products", func(c *Collection) any { return c.Products() }},
	accessor[*Collection]{"products_count", func(c *Collection) any { return c.ProductsCount() }},
	accessor[*Collection]{"all_products_count", func(c *Collection) any { return c.AllProductsCount() }},
	accessor[*Collection]{"all_tags", func(c *Collection) any { return c.AllTags() }},
	accessor[*Collection]{"sort_by", func(c *Collection) any { return c.SortBy() }},
	accessor[*Collection]{"default_sort_by", func(c *Collection) any { return c.DefaultSortBy() }},
)

func (c *Collection) Title() string  { return c.attrs.String("title") }
func (c *Collection) Handle() string { return c.attrs.String("handle") }

func (c *Collection) Products() []*Product {
	return append([]*Product{}, c.products...)
}

// FeaturedImage is the collection image, else the first product's featured
// image.
func (c *Collection) FeaturedImage() *Image {
	if c.image != nil {
		return c.image
	}
	for _, p := range c.products {
		if img := p.FeaturedImage(); img != nil {
			return img
		}
	}
	return nil
}

// ProductsCount prefers the stored count and falls back to the number of
// wrapped products.
func (c *Collection) ProductsCount() int {
	if n, ok := c.attrs.OptionalInt("products_count"); ok {
		return n
	}
	return len(c.products)
}

func (c *Collection) AllProductsCount() int {
	if n, ok := c.attrs.OptionalInt("all_products_count"); ok {
		return n
	}
	return c.ProductsCount()
}

// AllTags is the union of product tags in first-seen order.
func (c *Collection) AllTags() []string {
	if c.attrs.has("all_tags") {
		return c.attrs.Strings("all_tags")
	}
	seen := map[string]bool{}
	out := []string{}
	for _, p := range c.products {
		for _, tag := range p.Tags() {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}

func (c *Collection) DefaultSortBy() string {
	if s := c.attrs.String("default_sort_by"); s != "" {
		return s
	}
	return defaultSortOrder
}

func (c *Collection) SortBy() string {
	if s := c.attrs.String("sort_by"); s != "" {
		return s
	}
	return c.DefaultSortBy()
}

func (c *Collection) Get(name string) (any, bool) { return collectionFields.get(c, name) }
func (c *Collection) Raw(name string) (any, bool) { return c.attrs.Lookup(name) }
func (c *Collection) RawKeys() []string           { return c.attrs.Keys() }
func (c *Collection) Fields() []string            { return collectionFields.fields() }

func (c *Collection) String() string { return c.Title() }
