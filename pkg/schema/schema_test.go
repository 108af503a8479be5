package schema

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	json "github.com/goccy/go-json"
)

const heroSection = `<div class="hero">{{ section.settings.opacity }}</div>
{% schema %}
{"name":"Hero","settings":[{"type":"range","id":"opacity","min":0,"max":1,"step":0.1}],"presets":[{"name":"Hero"}]}
{% endschema %}`

func TestParseEndToEnd(t *testing.T) {
	s := Parse(heroSection)
	if s == nil {
		t.Fatalf("expected schema")
	}
	settings := ExtractSettings(s)
	if len(settings) != 1 {
		t.Fatalf("settings = %d, want 1", len(settings))
	}
	state := BuildInitialState(settings)
	if diff := cmp.Diff(map[string]any{"opacity": 0.0}, state.Map()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMissingOrMalformed(t *testing.T) {
	if Parse("<div>no schema</div>") != nil {
		t.Fatalf("missing block should yield nil")
	}
	if Parse("{% schema %}{\"name\": }{% endschema %}") != nil {
		t.Fatalf("malformed block should yield nil")
	}
}

func TestParseToleratesUnexpectedFieldTypes(t *testing.T) {
	s := Parse(`{% schema %}{
		"name": {"en": "Hero"},
		"limit": "two",
		"settings": [
			{"type":"text","id":"heading","label":{"fr":"Titre","en":"Heading"},"default":"Hi"},
			{"type":"text","id":"broken","default":"x","options":"nope"},
			{"type":"text","id":"subtitle","label":{"fr":"Sous-titre"}}
		],
		"blocks": [{"type":"quote","name":{"en":"Quote"}}],
		"presets": [{"name":{"en":"Hero"}}]
	}{% endschema %}`)
	if s == nil {
		t.Fatalf("expected schema")
	}
	if s.Name != "" || s.Limit != 0 {
		t.Fatalf("name = %q limit = %d", s.Name, s.Limit)
	}

	var labels []string
	for _, setting := range s.Settings {
		labels = append(labels, setting.ID+":"+setting.Label)
	}
	if diff := cmp.Diff([]string{"heading:Heading", "subtitle:Sous-titre"}, labels); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
	if len(s.Blocks) != 1 || s.Blocks[0].Name != "Quote" {
		t.Fatalf("blocks = %#v", s.Blocks)
	}
	if len(s.Presets) != 1 || s.Presets[0].Name != "Hero" {
		t.Fatalf("presets = %#v", s.Presets)
	}
	if diff := cmp.Diff(map[string]any{"heading": "Hi", "subtitle": ""}, BuildInitialState(ExtractSettings(s)).Map()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	if Parse(`{% schema %}[1, 2]{% endschema %}`) != nil {
		t.Fatalf("array body should yield nil")
	}
}

func TestParseUsesFirstBlock(t *testing.T) {
	code := `{% schema %}{"name":"First"}{% endschema %}{%- schema -%}{"name":"Second"}{%- endschema -%}`
	if got := Parse(code).Name; got != "First" {
		t.Fatalf("name = %q", got)
	}
	if got := Strip(code); got != "" {
		t.Fatalf("strip left %q", got)
	}
}

func TestLocate(t *testing.T) {
	span, ok := Locate(heroSection)
	if !ok {
		t.Fatalf("expected block")
	}
	if !strings.HasPrefix(heroSection[span.Start:], "{% schema %}") {
		t.Fatalf("start offset %d", span.Start)
	}
	if heroSection[span.BodyStart:span.BodyStart+len(span.Body)] != span.Body {
		t.Fatalf("body offset mismatch")
	}
}

func TestResolveLabel(t *testing.T) {
	cases := map[string]string{
		"t:sections.hero.settings.background_image.label":        "Background Image",
		"t:sections.hero.settings.text_alignment.options__2.label": "Text Alignment",
		"t:sections.hero.settings.button_text.label":              "Button Text",
		"t:sections.hero.settings.heading.info":                   "Heading",
		"t:sections.hero.settings.email.placeholder":              "Email",
		"t:sections.blocks.settings.call_to_action.label":         "Call To Action",
		"t:sections.testimonials.blocks.testimonial.name":         "Testimonial",
		"t:sections.cta.blocks.button.name":                       "Button",
		"t:sections.hero.name":                                    "Hero",
		"t:label":          "label",
		"Background Color": "Background Color",
		"":                 "",
	}
	for raw, want := range cases {
		if got := ResolveLabel(raw); got != want {
			t.Errorf("ResolveLabel(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestExtractResolvesNestedLabels(t *testing.T) {
	s := Parse(`{% schema %}{
		"name": "Testimonials",
		"settings": [{"type":"select","id":"align","label":"t:sections.x.settings.alignment.label",
			"options":[{"value":"left","label":"t:sections.x.settings.alignment.options__1.label"},{"value":2,"label":"Two"}]}],
		"blocks": [{"type":"quote","name":"t:sections.x.blocks.testimonial.name",
			"settings":[{"type":"text","id":"author","label":"t:sections.x.blocks.testimonial.settings.author.label"}]}]
	}{% endschema %}`)
	if s == nil {
		t.Fatalf("expected schema")
	}

	settings := ExtractSettings(s)
	want := []Option{{Value: "left", Label: "Alignment"}, {Value: "2", Label: "Two"}}
	if diff := cmp.Diff(want, settings[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if s.Settings[0].Options[0].Label == "Alignment" {
		t.Fatalf("extract must not mutate the parsed schema")
	}

	blocks := ExtractBlocks(s)
	if blocks[0].Name != "Testimonial" {
		t.Fatalf("block name = %q", blocks[0].Name)
	}
	if blocks[0].Settings[0].Label != "Author" {
		t.Fatalf("block setting label = %q", blocks[0].Settings[0].Label)
	}
}

func TestBuildInitialStateDefaults(t *testing.T) {
	s := Parse(`{% schema %}{"name":"All","settings":[
		{"type":"header","content":"Heading"},
		{"type":"text","id":"title"},
		{"type":"font_picker","id":"font"},
		{"type":"text_alignment","id":"align"},
		{"type":"radio","id":"layout","options":[{"value":"grid"},{"value":"list"}]},
		{"type":"select","id":"size","options":[{"value":"small"},{"value":"large"}]},
		{"type":"collection_list","id":"collections"},
		{"type":"product_list","id":"products"},
		{"type":"url","id":"link"},
		{"type":"url","id":"shop_link","default":"/products"},
		{"type":"image_picker","id":"image"},
		{"type":"checkbox","id":"enabled"},
		{"type":"color","id":"text_color"},
		{"type":"number","id":"count"},
		{"type":"range","id":"opacity","min":0.5,"max":1,"step":0.1},
		{"type":"product","id":"featured_product"},
		{"type":"collection","id":"featured_collection"},
		{"type":"link_list","id":"menu"},
		{"type":"paragraph","content":"Help"}
	]}{% endschema %}`)
	if s == nil {
		t.Fatalf("expected schema")
	}

	state := BuildInitialState(s.Settings)
	want := map[string]any{
		"title":               "",
		"font":                "system-ui",
		"align":               "left",
		"layout":              "grid",
		"size":                "small",
		"collections":         "[]",
		"products":            "[]",
		"link":                "#",
		"shop_link":           "/products",
		"image":               "",
		"enabled":             false,
		"text_color":          "#000000",
		"count":               0.0,
		"opacity":             0.5,
		"featured_product":    "",
		"featured_collection": "",
		"menu":                "",
	}
	if diff := cmp.Diff(want, state.Map()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if state.Keys()[0] != "title" {
		t.Fatalf("state should preserve schema order, got %v", state.Keys())
	}
}

func TestExplicitNullDefaultWins(t *testing.T) {
	s := Parse(`{% schema %}{"settings":[{"type":"checkbox","id":"flag","default":null}]}{% endschema %}`)
	v, ok := BuildInitialState(s.Settings).Get("flag")
	if !ok || v != nil {
		t.Fatalf("flag = %#v, %v; want explicit nil", v, ok)
	}
}

func TestStateJSONOrder(t *testing.T) {
	state := NewState()
	state.Set("zeta", 1)
	state.Set("alpha", "a")
	state.Set("mid", true)

	b, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(b); got != `{"zeta":1,"alpha":"a","mid":true}` {
		t.Fatalf("json = %s", got)
	}

	decoded := NewState()
	if err := json.Unmarshal([]byte(`{"b":1,"a":{"x":[1,2]},"c":null}`), decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, decoded.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if err := json.Unmarshal([]byte(`[1,2]`), decoded); err == nil {
		t.Fatalf("expected error for non-object state")
	}
}

func TestStateMergeAndClone(t *testing.T) {
	base := NewState()
	base.Set("a", 1)
	base.Set("b", 2)

	merged := ApplyPresetSettings(base, Preset{Settings: map[string]any{"b": 3, "d": 4, "c": 5}})
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, merged.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := base.Get("b"); v != 2 {
		t.Fatalf("base mutated: b = %v", v)
	}
	merged.Delete("a")
	if merged.Len() != 3 {
		t.Fatalf("len after delete = %d", merged.Len())
	}
}

func TestBuildBlockInstances(t *testing.T) {
	s := Parse(`{% schema %}{
		"name":"Slides",
		"blocks":[{"type":"slide","name":"Slide","settings":[
			{"type":"text","id":"heading","default":"Slide"},
			{"type":"checkbox","id":"dark"}]}],
		"presets":[{"name":"Slides","blocks":[
			{"type":"slide","settings":{"heading":"First"}},
			{"type":"missing"},
			{"type":"slide"}]}]
	}{% endschema %}`)

	instances := BuildBlockInstances(s)
	if len(instances) != 2 {
		t.Fatalf("instances = %d, want 2", len(instances))
	}
	if instances[0].ID != "block-0" || instances[1].ID != "block-1" {
		t.Fatalf("ids = %s, %s", instances[0].ID, instances[1].ID)
	}
	if diff := cmp.Diff(map[string]any{"heading": "First", "dark": false}, instances[0].Settings.Map()); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
	def, _ := s.Block("slide")
	if got := instances[1].Title(def); got != "Slide" {
		t.Fatalf("title = %q", got)
	}
}

func TestLoaderReadsFS(t *testing.T) {
	files := fstest.MapFS{"sections/hero.liquid": {Data: []byte(heroSection)}}
	loader := NewLoader(WithFileSystem(files))

	doc, err := loader.Load(context.Background(), SourceFromFS("sections/hero.liquid"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Schema() == nil || doc.Schema().Name != "Hero" {
		t.Fatalf("document schema = %#v", doc.Schema())
	}
	if _, err := NewLoader().Load(context.Background(), SourceFromFS("x")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
	if _, err := NewDocument(SourceInline(""), nil); err == nil {
		t.Fatalf("expected error for empty code")
	}
}
