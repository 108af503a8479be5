package prompt

import (
	"context"
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	textAreas []string

	inputPos   int
	selectPos  int
	confirmPos int
	textPos    int

	infoMessages []string
	selects      []SelectConfig
	inputDefault []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputDefault = append(s.inputDefault, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selects = append(s.selects, cfg)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

const sectionSchema = `{
	"name": "Hero",
	"settings": [
		{"type": "header", "content": "Content"},
		{"type": "text", "id": "heading", "default": "Welcome"},
		{"type": "textarea", "id": "body"},
		{"type": "checkbox", "id": "show_button", "default": true},
		{"type": "range", "id": "padding", "min": 0, "max": 40, "step": 4, "unit": "px", "default": 16},
		{"type": "select", "id": "layout", "options": [{"value": "wide", "label": "Wide"}, {"value": "narrow"}], "default": "narrow"},
		{"type": "color", "id": "accent", "default": "#000000"},
		{"type": "font_picker", "id": "heading_font", "default": "georgia"},
		{"type": "product", "id": "featured"}
	]
}`

func decodeSchema(t *testing.T, raw string) *schema.Schema {
	t.Helper()
	s, err := schema.Decode(raw)
	if err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	return s
}

func TestEditSettings(t *testing.T) {
	s := decodeSchema(t, sectionSchema)
	state := schema.BuildInitialState(s.Settings)

	driver := &stubDriver{
		inputs:    []string{"Hello", "41", "abc", "24", "not-a-color", "#ff0000"},
		textAreas: []string{"Body copy"},
		confirm:   []bool{false},
		selectIdx: []int{0, 1},
	}
	editor := New(WithDriver(driver))

	got, err := editor.EditSettings(context.Background(), s.Settings, state)
	if err != nil {
		t.Fatalf("EditSettings: %v", err)
	}

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"heading":"Hello","body":"Body copy","show_button":false,"padding":24,"layout":"wide","accent":"#ff0000","heading_font":"arial","featured":""}`
	if diff := cmp.Diff(want, string(raw)); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"Content",
		"Invalid padding: must be at most 40",
		`Invalid padding: strconv.ParseFloat: parsing "abc": invalid syntax`,
		`Invalid accent: "not-a-color" is not a color`,
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Wide", "narrow"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("select options mismatch (-want +got):\n%s", diff)
	}
	if driver.selects[0].DefaultIndex != 1 {
		t.Fatalf("select default = %d, want 1", driver.selects[0].DefaultIndex)
	}
	if driver.selects[1].DefaultIndex != 3 {
		t.Fatalf("font default = %d, want 3", driver.selects[1].DefaultIndex)
	}
	if diff := cmp.Diff([]string{"Welcome", "16", "16", "16", "#000000", "#000000"}, driver.inputDefault); diff != "" {
		t.Fatalf("input defaults mismatch (-want +got):\n%s", diff)
	}

	if v, _ := state.Get("heading"); v != "Welcome" {
		t.Fatalf("original state mutated: heading = %v", v)
	}
}

func TestEditSettingsKeepsValuesOnEmptyInput(t *testing.T) {
	s := decodeSchema(t, `{"settings":[
		{"type":"number","id":"count","default":3},
		{"type":"color_background","id":"bg","default":"linear-gradient(#fff, #000)"}
	]}`)
	driver := &stubDriver{inputs: []string{"  ", ""}}

	got, err := New(WithDriver(driver)).EditSettings(context.Background(), s.Settings, schema.BuildInitialState(s.Settings))
	if err != nil {
		t.Fatalf("EditSettings: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"count": float64(3), "bg": ""}, got.Map()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestEditSettingsErrors(t *testing.T) {
	s := decodeSchema(t, `{"settings":[{"type":"radio","id":"size","options":[{"value":"s"},{"value":"m"}]}]}`)

	_, err := New(WithDriver(&stubDriver{selectIdx: []int{5}})).EditSettings(context.Background(), s.Settings, nil)
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(WithDriver(&stubDriver{})).EditSettings(ctx, s.Settings, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEditBlocks(t *testing.T) {
	s := decodeSchema(t, `{
		"blocks": [{"type": "slide", "name": "Slide", "settings": [{"type": "text", "id": "title", "default": "Slide"}]}],
		"presets": [{"name": "Slides", "blocks": [{"type": "slide"}, {"type": "slide", "settings": {"title": "Second"}}]}]
	}`)
	blocks := schema.BuildBlockInstances(s)
	blocks = append(blocks, schema.BlockInstance{ID: "block-x", Type: "unknown", Settings: schema.NewState()})

	driver := &stubDriver{inputs: []string{"First", "Second!"}}
	got, err := New(WithDriver(driver)).EditBlocks(context.Background(), s, blocks)
	if err != nil {
		t.Fatalf("EditBlocks: %v", err)
	}

	titles := make([]any, 0, len(got))
	for _, b := range got {
		v, _ := b.Settings.Get("title")
		titles = append(titles, v)
	}
	if diff := cmp.Diff([]any{"First", "Second!", nil}, titles); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{"Block block-0 (Slide)", "Block block-1 (Second)"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}
