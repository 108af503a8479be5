package schema

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Setting types that get special treatment. Any other type string is
// accepted and treated as text.
const (
	TypeText           = "text"
	TypeTextarea       = "textarea"
	TypeRichText       = "richtext"
	TypeNumber         = "number"
	TypeRange          = "range"
	TypeCheckbox       = "checkbox"
	TypeSelect         = "select"
	TypeRadio          = "radio"
	TypeColor          = "color"
	TypeColorBG        = "color_background"
	TypeFontPicker     = "font_picker"
	TypeURL            = "url"
	TypeImagePicker    = "image_picker"
	TypeVideoURL       = "video_url"
	TypeProduct        = "product"
	TypeCollection     = "collection"
	TypeArticle        = "article"
	TypeBlog           = "blog"
	TypePage           = "page"
	TypeLinkList       = "link_list"
	TypeProductList    = "product_list"
	TypeCollectionList = "collection_list"
	TypeTextAlignment  = "text_alignment"
	TypeHeader         = "header"
	TypeParagraph      = "paragraph"
)

// IsDisplayOnly reports whether settings of type t carry no value.
func IsDisplayOnly(t string) bool {
	return t == TypeHeader || t == TypeParagraph
}

// IsResource reports whether settings of type t reference a store resource
// fetched by id.
func IsResource(t string) bool {
	switch t {
	case TypeProduct, TypeCollection, TypeArticle, TypeBlog, TypePage, TypeLinkList:
		return true
	}
	return false
}

// Schema is the parsed configuration block of a section.
type Schema struct {
	Name      string    `json:"name,omitempty"`
	Tag       string    `json:"tag,omitempty"`
	Class     string    `json:"class,omitempty"`
	Limit     int       `json:"limit,omitempty"`
	MaxBlocks int       `json:"max_blocks,omitempty"`
	Settings  []Setting `json:"settings,omitempty"`
	Blocks    []Block   `json:"blocks,omitempty"`
	Presets   []Preset  `json:"presets,omitempty"`
}

// Setting is one editable field.
type Setting struct {
	Type        string   `json:"type"`
	ID          string   `json:"id,omitempty"`
	Label       string   `json:"label,omitempty"`
	Info        string   `json:"info,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Content     string   `json:"content,omitempty"`
	Default     any      `json:"default,omitempty"`
	Min         *Bound   `json:"min,omitempty"`
	Max         *Bound   `json:"max,omitempty"`
	Step        *Bound   `json:"step,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Options     []Option `json:"options,omitempty"`

	// HasDefault distinguishes an explicit default (even null) from none.
	HasDefault bool `json:"-"`
}

type settingAlias Setting

// UnmarshalJSON records whether the payload carried a default key.
func (s *Setting) UnmarshalJSON(data []byte) error {
	var alias settingAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, alias.HasDefault = keys["default"]
	*s = Setting(alias)
	return nil
}

// Bound is a numeric min, max or step. Numeric strings are accepted;
// anything else decodes as 0 so presence checks still see the key.
type Bound float64

func (b *Bound) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*b = Bound(t)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		*b = Bound(f)
	default:
		*b = 0
	}
	return nil
}

// Float returns the bound as a float64; nil bounds are 0.
func (b *Bound) Float() float64 {
	if b == nil {
		return 0
	}
	return float64(*b)
}

// Option is a select or radio choice.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// UnmarshalJSON accepts non-string option values and stores their text.
func (o *Option) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value any    `json:"value"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Label = raw.Label
	switch v := raw.Value.(type) {
	case string:
		o.Value = v
	case float64:
		o.Value = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		o.Value = strconv.FormatBool(v)
	case nil:
		o.Value = ""
	default:
		b, _ := json.Marshal(v)
		o.Value = string(b)
	}
	return nil
}

// Block is a repeatable block definition.
type Block struct {
	Type     string    `json:"type"`
	Name     string    `json:"name,omitempty"`
	Limit    int       `json:"limit,omitempty"`
	Settings []Setting `json:"settings,omitempty"`
}

// Preset is an editor preset.
type Preset struct {
	Name     string         `json:"name"`
	Category string         `json:"category,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
	Blocks   []PresetBlock  `json:"blocks,omitempty"`
}

// PresetBlock seeds one block instance of a preset.
type PresetBlock struct {
	Type     string         `json:"type"`
	Settings map[string]any `json:"settings,omitempty"`
}

// Block returns the block definition for type t.
func (s *Schema) Block(t string) (Block, bool) {
	if s == nil {
		return Block{}, false
	}
	for _, b := range s.Blocks {
		if b.Type == t {
			return b, true
		}
	}
	return Block{}, false
}
