package drops

import (
	"iter"
	"slices"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"
)

// PrimitiveSettings is the ordered settings state produced from a section
// schema: ids mapped to strings, numbers and booleans.
type PrimitiveSettings interface {
	Get(key string) (any, bool)
	Keys() []string
}

// SettingsOption configures a SectionSettings.
type SettingsOption func(*SectionSettings)

// WithFontRegistry sets the registry used to recognise font identifiers.
func WithFontRegistry(r *fonts.Registry) SettingsOption {
	return func(s *SectionSettings) {
		if r != nil {
			s.registry = r
		}
	}
}

type cachedFont struct {
	id   string
	font *Font
}

// SectionSettings merges primitive settings with resource drops for one
// render. Lookups prefer a resource drop, then a font wrapper for values that
// name a registered font, then the primitive value. A SectionSettings is not
// safe for concurrent use; build one per render.
type SectionSettings struct {
	primitives PrimitiveSettings
	resources  map[string]Drop
	registry   *fonts.Registry
	fontCache  map[string]cachedFont
}

// NewSectionSettings builds the merged view. resources may be nil.
func NewSectionSettings(primitives PrimitiveSettings, resources map[string]Drop, options ...SettingsOption) *SectionSettings {
	s := &SectionSettings{
		primitives: primitives,
		resources:  map[string]Drop{},
		registry:   fonts.Default(),
		fontCache:  map[string]cachedFont{},
	}
	for key, drop := range resources {
		if drop != nil {
			s.resources[key] = drop
		}
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get resolves a setting id. Repeated lookups of the same font setting return
// the same *Font.
func (s *SectionSettings) Get(key string) (any, bool) {
	if drop, ok := s.resources[key]; ok {
		return drop, true
	}
	if s.primitives == nil {
		return nil, false
	}
	value, ok := s.primitives.Get(key)
	if !ok {
		return nil, false
	}
	if id, isString := value.(string); isString && s.registry.IsKnown(id) {
		return s.font(key, id), true
	}
	return value, true
}

func (s *SectionSettings) font(key, id string) *Font {
	if cached, ok := s.fontCache[key]; ok && cached.id == id {
		return cached.font
	}
	f := NewFont(s.registry.Lookup(id))
	s.fontCache[key] = cachedFont{id: id, font: f}
	return f
}

// Raw returns the primitive value without resource or font wrapping.
func (s *SectionSettings) Raw(key string) (any, bool) {
	if s.primitives == nil {
		return nil, false
	}
	return s.primitives.Get(key)
}

// Fields lists primitive keys in state order followed by resource keys that
// have no primitive counterpart, sorted.
func (s *SectionSettings) Fields() []string {
	var keys []string
	seen := map[string]bool{}
	if s.primitives != nil {
		for _, key := range s.primitives.Keys() {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	extra := make([]string, 0, len(s.resources))
	for key := range s.resources {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

// SettingsIterator walks the merged settings in Fields order.
type SettingsIterator struct {
	settings *SectionSettings
	keys     []string
	pos      int
}

// Iter returns a fresh iterator positioned before the first setting.
func (s *SectionSettings) Iter() *SettingsIterator {
	return &SettingsIterator{settings: s, keys: s.Fields()}
}

// Next returns the next key and its resolved value; ok is false once the
// iterator is exhausted.
func (it *SettingsIterator) Next() (key string, value any, ok bool) {
	if it.pos >= len(it.keys) {
		return "", nil, false
	}
	key = it.keys[it.pos]
	it.pos++
	value, _ = it.settings.Get(key)
	return key, value, true
}

// All yields every key with its resolved value.
func (s *SectionSettings) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		it := s.Iter()
		for {
			key, value, ok := it.Next()
			if !ok || !yield(key, value) {
				return
			}
		}
	}
}
