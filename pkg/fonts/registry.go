package fonts

// BaseIdentifier is the registry entry used for unknown identifiers and as
// the font_picker default.
const BaseIdentifier = "system-ui"

// Descriptor describes a font the preview can render. Values are immutable;
// modifications produce a new Descriptor.
type Descriptor struct {
	Family           string `json:"family" yaml:"family"`
	FallbackFamilies string `json:"fallback_families" yaml:"fallback_families"`
	Stack            string `json:"stack" yaml:"stack"`
	Style            string `json:"style" yaml:"style"`
	Weight           int    `json:"weight" yaml:"weight"`
	Src              string `json:"src,omitempty" yaml:"src,omitempty"`
	Format           string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Option is a UI-facing registry entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Stack string `json:"stack"`
}

type entry struct {
	id         string
	descriptor Descriptor
}

// Registry is a static, ordered identifier → Descriptor table.
type Registry struct {
	entries []entry
	index   map[string]int
}

// NewRegistry builds a registry from id/descriptor pairs in registration
// order. Later duplicates replace earlier ones in place.
func NewRegistry(fonts ...Font) *Registry {
	r := &Registry{index: make(map[string]int, len(fonts))}
	for _, f := range fonts {
		if pos, ok := r.index[f.ID]; ok {
			r.entries[pos].descriptor = f.Descriptor
			continue
		}
		r.index[f.ID] = len(r.entries)
		r.entries = append(r.entries, entry{id: f.ID, descriptor: f.Descriptor})
	}
	return r
}

// Font pairs a registry identifier with its descriptor.
type Font struct {
	ID         string
	Descriptor Descriptor
}

// Lookup never fails: unknown identifiers resolve to the BaseIdentifier entry
// (or the first registered entry when the base is absent).
func (r *Registry) Lookup(id string) Descriptor {
	if r == nil || len(r.entries) == 0 {
		return Descriptor{}
	}
	if pos, ok := r.index[id]; ok {
		return r.entries[pos].descriptor
	}
	if pos, ok := r.index[BaseIdentifier]; ok {
		return r.entries[pos].descriptor
	}
	return r.entries[0].descriptor
}

// IsKnown reports whether value is a registered identifier.
func (r *Registry) IsKnown(value string) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[value]
	return ok
}

// Options lists every entry in registration order.
func (r *Registry) Options() []Option {
	if r == nil {
		return nil
	}
	out := make([]Option, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Option{Value: e.id, Label: e.descriptor.Family, Stack: e.descriptor.Stack})
	}
	return out
}

// Identifiers returns the registered ids in order.
func (r *Registry) Identifiers() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.id)
	}
	return out
}

func webSafe(family, fallback, stack string) Descriptor {
	return Descriptor{
		Family:           family,
		FallbackFamilies: fallback,
		Stack:            stack,
		Style:            "normal",
		Weight:           400,
	}
}

var defaultRegistry = NewRegistry(
	Font{"system-ui", webSafe("System UI", "sans-serif", `system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif`)},
	Font{"arial", webSafe("Arial", "sans-serif", "Arial, sans-serif")},
	Font{"helvetica", webSafe("Helvetica", "sans-serif", "Helvetica, Arial, sans-serif")},
	Font{"georgia", webSafe("Georgia", "serif", "Georgia, serif")},
	Font{"times", webSafe("Times New Roman", "serif", `"Times New Roman", Times, serif`)},
	Font{"courier", webSafe("Courier New", "monospace", `"Courier New", Courier, monospace`)},
	Font{"verdana", webSafe("Verdana", "sans-serif", "Verdana, Geneva, sans-serif")},
	Font{"trebuchet", webSafe("Trebuchet MS", "sans-serif", `"Trebuchet MS", Helvetica, sans-serif`)},
	Font{"tahoma", webSafe("Tahoma", "sans-serif", "Tahoma, Verdana, sans-serif")},
	Font{"palatino", webSafe("Palatino", "serif", `"Palatino Linotype", Palatino, "Book Antiqua", serif`)},
)

// Default returns the built-in web-safe registry.
func Default() *Registry {
	return defaultRegistry
}

// Lookup resolves id against the default registry.
func Lookup(id string) Descriptor {
	return defaultRegistry.Lookup(id)
}

// IsKnown reports whether value names a default registry entry.
func IsKnown(value string) bool {
	return defaultRegistry.IsKnown(value)
}

// Options lists the default registry entries for UI population.
func Options() []Option {
	return defaultRegistry.Options()
}
