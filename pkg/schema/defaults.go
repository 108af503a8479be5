package schema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"
)

// Type-implied defaults.
const (
	DefaultColor     = "#000000"
	DefaultURL       = "#"
	DefaultAlignment = "left"
	EmptyList        = "[]"
)

// BuildInitialState computes the starting value of every non-display
// setting. An explicit default always wins; otherwise the value follows the
// setting type.
func BuildInitialState(settings []Setting) *State {
	state := NewState()
	for _, setting := range settings {
		if IsDisplayOnly(setting.Type) || setting.ID == "" {
			continue
		}
		state.Set(setting.ID, InitialValue(setting))
	}
	return state
}

// InitialValue returns the starting value of a single setting.
func InitialValue(setting Setting) any {
	if setting.HasDefault {
		return setting.Default
	}
	switch setting.Type {
	case TypeCheckbox:
		return false
	case TypeColor, TypeColorBG:
		return DefaultColor
	case TypeNumber, TypeRange:
		if setting.Min != nil {
			return setting.Min.Float()
		}
		return 0.0
	case TypeSelect, TypeRadio:
		if len(setting.Options) > 0 {
			return setting.Options[0].Value
		}
		return ""
	case TypeURL:
		return DefaultURL
	case TypeFontPicker:
		return fonts.BaseIdentifier
	case TypeTextAlignment:
		return DefaultAlignment
	case TypeProductList, TypeCollectionList:
		return EmptyList
	default:
		return ""
	}
}

// ApplyPresetSettings overlays a preset's settings on a copy of state.
func ApplyPresetSettings(state *State, preset Preset) *State {
	out := state.Clone()
	out.Merge(preset.Settings)
	return out
}

// BlockInstance is one block placed in the section.
type BlockInstance struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Settings *State `json:"settings"`
}

// Title picks a display title: a heading, title or text setting, then the
// block definition name, then the block type.
func (b BlockInstance) Title(def Block) string {
	for _, key := range []string{"heading", "title", "text"} {
		if v, ok := b.Settings.Get(key); ok {
			if s := fmt.Sprint(v); v != nil && s != "" && s != "false" && s != "0" {
				return s
			}
		}
	}
	if def.Name != "" {
		return def.Name
	}
	return b.Type
}

// BuildBlockInstances places the blocks of the first preset. Each instance
// starts from its definition's initial state overlaid with the preset block
// settings. Preset blocks whose type has no definition are skipped.
func BuildBlockInstances(s *Schema) []BlockInstance {
	if s == nil || len(s.Presets) == 0 {
		return nil
	}
	var out []BlockInstance
	for _, pb := range s.Presets[0].Blocks {
		def, ok := s.Block(pb.Type)
		if !ok {
			continue
		}
		state := BuildInitialState(def.Settings)
		for _, key := range slices.Sorted(maps.Keys(pb.Settings)) {
			state.Set(key, pb.Settings[key])
		}
		out = append(out, BlockInstance{
			ID:       fmt.Sprintf("block-%d", len(out)),
			Type:     pb.Type,
			Settings: state,
		})
	}
	return out
}
