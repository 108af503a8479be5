package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/internal/labels"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/color"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

var alignments = []string{"left", "center", "right"}

// Editor walks schema settings and prompts for a value per setting.
type Editor struct {
	driver   Driver
	fonts    *fonts.Registry
	pageSize int
}

// New builds an Editor. Without WithDriver the survey driver is used.
func New(options ...Option) *Editor {
	e := &Editor{}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver(nil)
	}
	if e.fonts == nil {
		e.fonts = fonts.Default()
	}
	return e
}

// EditSettings prompts for every editable setting and returns an updated
// copy of state. Current values seed the prompt defaults; settings that
// reference store resources keep their current value.
func (e *Editor) EditSettings(ctx context.Context, settings []schema.Setting, state *schema.State) (*schema.State, error) {
	out := state.Clone()
	for _, setting := range settings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if schema.IsDisplayOnly(setting.Type) {
			if msg := displayText(setting); msg != "" {
				if err := e.driver.Info(ctx, msg); err != nil {
					return nil, err
				}
			}
			continue
		}
		if setting.ID == "" || !editable(setting.Type) {
			continue
		}
		current, ok := out.Get(setting.ID)
		if !ok {
			current = schema.InitialValue(setting)
		}
		value, err := e.promptSetting(ctx, setting, current)
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", setting.ID, err)
		}
		out.Set(setting.ID, value)
	}
	return out, nil
}

// EditBlocks edits the settings of each block instance against its block
// definition. Blocks whose type is not defined in s are returned unchanged.
func (e *Editor) EditBlocks(ctx context.Context, s *schema.Schema, blocks []schema.BlockInstance) ([]schema.BlockInstance, error) {
	out := make([]schema.BlockInstance, 0, len(blocks))
	for _, block := range blocks {
		def, ok := s.Block(block.Type)
		if !ok {
			out = append(out, block)
			continue
		}
		if err := e.driver.Info(ctx, fmt.Sprintf("Block %s (%s)", block.ID, block.Title(def))); err != nil {
			return nil, err
		}
		settings, err := e.EditSettings(ctx, def.Settings, block.Settings)
		if err != nil {
			return nil, err
		}
		block.Settings = settings
		out = append(out, block)
	}
	return out, nil
}

func (e *Editor) promptSetting(ctx context.Context, setting schema.Setting, current any) (any, error) {
	switch setting.Type {
	case schema.TypeCheckbox:
		return e.driver.Confirm(ctx, ConfirmConfig{
			Message: displayLabel(setting),
			Default: truthy(current),
			Help:    setting.Info,
		})
	case schema.TypeSelect, schema.TypeRadio:
		values := make([]string, len(setting.Options))
		names := make([]string, len(setting.Options))
		for i, opt := range setting.Options {
			values[i] = opt.Value
			names[i] = opt.Label
			if names[i] == "" {
				names[i] = opt.Value
			}
		}
		return e.promptChoice(ctx, setting, values, names, current)
	case schema.TypeTextAlignment:
		return e.promptChoice(ctx, setting, alignments, alignments, current)
	case schema.TypeFontPicker:
		opts := e.fonts.Options()
		values := make([]string, len(opts))
		names := make([]string, len(opts))
		for i, opt := range opts {
			values[i] = opt.Value
			names[i] = opt.Label
		}
		return e.promptChoice(ctx, setting, values, names, current)
	case schema.TypeNumber, schema.TypeRange:
		return e.promptNumber(ctx, setting, current)
	case schema.TypeColor, schema.TypeColorBG:
		return e.promptColor(ctx, setting, current)
	case schema.TypeTextarea, schema.TypeRichText, "inline_richtext", "html", "liquid":
		return e.driver.TextArea(ctx, TextAreaConfig{
			Message: displayLabel(setting),
			Default: stringValue(current),
			Help:    setting.Info,
		})
	default:
		return e.driver.Input(ctx, InputConfig{
			Message: displayLabel(setting),
			Default: stringValue(current),
			Help:    setting.Info,
		})
	}
}

func (e *Editor) promptChoice(ctx context.Context, setting schema.Setting, values, names []string, current any) (any, error) {
	if len(values) == 0 {
		return current, nil
	}
	defaultIdx := -1
	for i, v := range values {
		if v == stringValue(current) {
			defaultIdx = i
			break
		}
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(setting),
		Options:      names,
		DefaultIndex: defaultIdx,
		Help:         setting.Info,
		PageSize:     e.pageSize,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(values) {
		return nil, ErrNoSelection
	}
	return values[idx], nil
}

func (e *Editor) promptNumber(ctx context.Context, setting schema.Setting, current any) (any, error) {
	help := setting.Info
	if setting.Type == schema.TypeRange {
		help = strings.TrimSpace(fmt.Sprintf("%s (%s to %s%s)", help,
			formatNumber(setting.Min.Float()), formatNumber(setting.Max.Float()), setting.Unit))
	}
	for {
		input, err := e.driver.Input(ctx, InputConfig{
			Message: displayLabel(setting),
			Default: stringValue(current),
			Help:    help,
		})
		if err != nil {
			return nil, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return current, nil
		}
		f, err := strconv.ParseFloat(input, 64)
		if err == nil {
			err = checkBounds(setting, f)
		}
		if err != nil {
			if err := e.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", setting.ID, err)); err != nil {
				return nil, err
			}
			continue
		}
		return f, nil
	}
}

func (e *Editor) promptColor(ctx context.Context, setting schema.Setting, current any) (any, error) {
	for {
		input, err := e.driver.Input(ctx, InputConfig{
			Message: displayLabel(setting),
			Default: stringValue(current),
			Help:    setting.Info,
		})
		if err != nil {
			return nil, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			if setting.Type == schema.TypeColorBG {
				return "", nil
			}
			return current, nil
		}
		if setting.Type == schema.TypeColorBG || isColor(input) {
			return input, nil
		}
		if err := e.driver.Info(ctx, fmt.Sprintf("Invalid %s: %q is not a color", setting.ID, input)); err != nil {
			return nil, err
		}
	}
}

func checkBounds(setting schema.Setting, f float64) error {
	if setting.Min != nil && f < setting.Min.Float() {
		return fmt.Errorf("must be at least %s", formatNumber(setting.Min.Float()))
	}
	if setting.Max != nil && f > setting.Max.Float() {
		return fmt.Errorf("must be at most %s", formatNumber(setting.Max.Float()))
	}
	return nil
}

func isColor(s string) bool {
	_, ok := color.Parse(s)
	return ok
}

func editable(t string) bool {
	if schema.IsResource(t) {
		return false
	}
	switch t {
	case schema.TypeProductList, schema.TypeCollectionList, schema.TypeImagePicker:
		return false
	}
	return true
}

func displayLabel(setting schema.Setting) string {
	if setting.Label != "" {
		return setting.Label
	}
	return labels.Humanize(setting.ID)
}

func displayText(setting schema.Setting) string {
	if setting.Content != "" {
		return setting.Content
	}
	return setting.Label
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatNumber(t)
	}
	return fmt.Sprint(v)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
