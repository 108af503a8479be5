package drops

// Image wraps an image attribute bag.
type Image struct {
	attrs Attributes
}

// NewImage wraps attrs. A nil bag yields a nil Image.
func NewImage(attrs Attributes) *Image {
	if attrs == nil {
		return nil
	}
	return &Image{attrs: attrs}
}

var imageFields = newAccessors(
	accessor[*Image]{"src", func(i *Image) any { return i.Src() }},
	accessor[*Image]{"url", func(i *Image) any { return i.Src() }},
	accessor[*Image]{"alt", func(i *Image) any { return i.Alt() }},
	accessor[*Image]{"width", func(i *Image) any { return i.Width() }},
	accessor[*Image]{"height", func(i *Image) any { return i.Height() }},
	accessor[*Image]{"aspect_ratio", func(i *Image) any { return i.AspectRatio() }},
)

func (i *Image) Src() string { return i.attrs.String("src") }
func (i *Image) Alt() string { return i.attrs.String("alt") }
func (i *Image) Width() int  { return i.attrs.Int("width") }
func (i *Image) Height() int { return i.attrs.Int("height") }

// AspectRatio is width over height; an image without a height reports 0.
func (i *Image) AspectRatio() float64 {
	h := i.attrs.Float("height")
	if h == 0 {
		return 0
	}
	return i.attrs.Float("width") / h
}

// ImgURL returns the source URL. The preview has no image CDN so the size
// argument is accepted and ignored.
func (i *Image) ImgURL(size string) string {
	_ = size
	return i.Src()
}

func (i *Image) Get(name string) (any, bool) { return imageFields.get(i, name) }
func (i *Image) Raw(name string) (any, bool) { return i.attrs.Lookup(name) }
func (i *Image) RawKeys() []string           { return i.attrs.Keys() }
func (i *Image) Fields() []string            { return imageFields.fields() }

// String renders the image as its URL when printed directly.
func (i *Image) String() string { return i.Src() }
