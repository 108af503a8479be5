package mockdata

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"
)

// Category groups related presets.
type Category string

const (
	CategoryProduct    Category = "product"
	CategoryCollection Category = "collection"
	CategoryCart       Category = "cart"
)

// Categories lists preset categories in display order.
var Categories = []Category{CategoryProduct, CategoryCollection, CategoryCart}

// ErrUnknownPreset is returned when a preset id is not registered.
var ErrUnknownPreset = errors.New("mockdata: unknown preset")

// Context is the top-level template data: shop, product, collection,
// request, customer and optionally article or cart.
type Context map[string]any

// Preset is a named overlay on the default context.
type Preset struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Category    Category       `json:"category" yaml:"-"`
	Data        map[string]any `json:"data" yaml:"data"`
}

type library struct {
	defaults map[string]any
	presets  map[Category][]Preset
}

var (
	libraryOnce sync.Once
	libraryData library
	libraryErr  error
)

func load() (library, error) {
	libraryOnce.Do(func() {
		libraryData, libraryErr = loadLibrary(EmbeddedFS())
	})
	return libraryData, libraryErr
}

func loadLibrary(files fs.FS) (library, error) {
	var lib library

	raw, err := fs.ReadFile(files, "defaults.yaml")
	if err != nil {
		return lib, fmt.Errorf("mockdata: read defaults: %w", err)
	}
	if err := yaml.Unmarshal(raw, &lib.defaults); err != nil {
		return lib, fmt.Errorf("mockdata: parse defaults: %w", err)
	}

	raw, err = fs.ReadFile(files, "presets.yaml")
	if err != nil {
		return lib, fmt.Errorf("mockdata: read presets: %w", err)
	}
	if err := yaml.Unmarshal(raw, &lib.presets); err != nil {
		return lib, fmt.Errorf("mockdata: parse presets: %w", err)
	}
	for category, presets := range lib.presets {
		for i := range presets {
			presets[i].Category = category
		}
	}
	return lib, nil
}

func mustLoad() library {
	lib, err := load()
	if err != nil {
		// The bundled files are validated by tests.
		panic(err)
	}
	return lib
}

// Presets returns every preset, grouped in category order.
func Presets() []Preset {
	lib := mustLoad()
	var out []Preset
	for _, category := range Categories {
		for _, p := range lib.presets[category] {
			out = append(out, clonePreset(p))
		}
	}
	return out
}

// PresetsIn returns the presets of one category.
func PresetsIn(category Category) []Preset {
	lib := mustLoad()
	out := make([]Preset, 0, len(lib.presets[category]))
	for _, p := range lib.presets[category] {
		out = append(out, clonePreset(p))
	}
	return out
}

// Lookup finds a preset by id.
func Lookup(id string) (Preset, error) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
}

// DefaultContext returns a fresh copy of the default template data.
func DefaultContext() Context {
	lib := mustLoad()
	ctx := Context{
		"shop":       cloneValue(lib.defaults["shop"]),
		"product":    cloneValue(lib.defaults["product"]),
		"collection": cloneValue(lib.defaults["collection"]),
		"request": map[string]any{
			"design_mode": true,
			"page_type":   "product",
			"path":        "/products/demo",
		},
		"customer": nil,
	}
	return ctx
}

// ContextFromPreset overlays a preset on the default context. Unknown ids
// yield the default context.
func ContextFromPreset(id string) Context {
	ctx := DefaultContext()
	preset, err := Lookup(id)
	if err != nil {
		return ctx
	}
	for key, value := range preset.Data {
		ctx[key] = value
	}
	return ctx
}

// MergeCustomData overlays the top-level keys of a YAML or JSON object on a
// copy of base. When payload cannot be decoded, base is returned unchanged
// together with the decoding error.
func MergeCustomData(base Context, payload []byte) (Context, error) {
	var custom map[string]any
	if err := yaml.Unmarshal(payload, &custom); err != nil {
		return base, fmt.Errorf("mockdata: parse custom data: %w", err)
	}
	out := make(Context, len(base)+len(custom))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range custom {
		out[key] = value
	}
	return out, nil
}

func clonePreset(p Preset) Preset {
	p.Data, _ = cloneValue(p.Data).(map[string]any)
	return p
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, value := range t {
			out[key] = cloneValue(value)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, value := range t {
			out[i] = cloneValue(value)
		}
		return out
	default:
		return v
	}
}
