package drops

import "github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"

// Font wraps a font descriptor. Printing a Font yields its CSS stack so it can
// be dropped straight into a font-family declaration.
type Font struct {
	descriptor fonts.Descriptor
}

func NewFont(d fonts.Descriptor) *Font {
	return &Font{descriptor: d}
}

var fontFields = newAccessors(
	accessor[*Font]{"family", func(f *Font) any { return f.descriptor.Family }},
	accessor[*Font]{"fallback_families", func(f *Font) any { return f.descriptor.FallbackFamilies }},
	accessor[*Font]{"stack", func(f *Font) any { return f.descriptor.Stack }},
	accessor[*Font]{"style", func(f *Font) any { return f.descriptor.Style }},
	accessor[*Font]{"weight", func(f *Font) any { return f.descriptor.Weight }},
	accessor[*Font]{"src", func(f *Font) any { return f.descriptor.Src }},
	accessor[*Font]{"format", func(f *Font) any { return f.descriptor.Format }},
)

// Descriptor returns a copy of the underlying descriptor.
func (f *Font) Descriptor() fonts.Descriptor { return f.descriptor }

func (f *Font) Get(name string) (any, bool) { return fontFields.get(f, name) }

// Raw never resolves: a font exposes only its descriptor fields.
func (f *Font) Raw(string) (any, bool) { return nil, false }

func (f *Font) Fields() []string { return fontFields.fields() }

func (f *Font) String() string { return f.descriptor.Stack }
