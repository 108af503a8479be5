package filters

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"
)

func apply(t *testing.T, name string, in any, args ...any) any {
	t.Helper()
	fn, ok := Standard()[name]
	if !ok {
		t.Fatalf("filter %q not registered", name)
	}
	return fn(in, args...)
}

func TestColorFilters(t *testing.T) {
	cases := []struct {
		name string
		in   any
		args []any
		want any
	}{
		{"color_to_rgb", "#ff0000", nil, "rgb(255, 0, 0)"},
		{"color_lighten", "#000000", []any{"50"}, "rgb(128, 128, 128)"},
		{"color_darken", "#ffffff", []any{50}, "rgb(128, 128, 128)"},
		{"color_mix", "#ff0000", []any{"#0000ff", 100}, "rgb(255, 0, 0)"},
		{"color_mix", "#ff0000", []any{"#0000ff", 0}, "rgb(0, 0, 255)"},
		{"color_contrast", "#ffffff", nil, "#000000"},
		{"color_extract", "#00ff00", []any{"hue"}, 120.0},
		{"color_to_rgb", "not-a-color", nil, "not-a-color"},
	}
	for _, tc := range cases {
		if got := apply(t, tc.name, tc.in, tc.args...); got != tc.want {
			t.Errorf("%s(%v, %v) = %#v, want %#v", tc.name, tc.in, tc.args, got, tc.want)
		}
	}
}

func TestFontFaceDescriptor(t *testing.T) {
	webSafe := DescriptorFont{Font: drops.NewFont(fonts.Lookup("georgia"))}
	if got := FontFace(webSafe); got != "/* Georgia is a web-safe font */" {
		t.Fatalf("web-safe font_face = %q", got)
	}

	custom := DescriptorFont{Font: drops.NewFont(fonts.Descriptor{
		Family: "Roboto", Stack: `"Roboto", sans-serif`, Style: "normal", Weight: 400,
		Src: "https://fonts.example.com/roboto.woff2",
	})}
	want := `@font-face {
  font-family: "Roboto";
  src: url("https://fonts.example.com/roboto.woff2") format("woff2");
  font-weight: 400;
  font-style: normal;
  font-display: swap;
}`
	if diff := cmp.Diff(want, FontFace(custom)); diff != "" {
		t.Fatalf("font_face mismatch (-want +got):\n%s", diff)
	}
}

func TestFontFaceLegacy(t *testing.T) {
	f, ok := AsFontValue(map[string]any{"family": "Lato"})
	if !ok {
		t.Fatalf("map should classify as a legacy font")
	}
	want := `@font-face {
  font-family: "Lato";
  font-weight: 400;
  font-style: normal;
  font-display: swap;
  src: local("Lato");
}`
	if diff := cmp.Diff(want, FontFace(f)); diff != "" {
		t.Fatalf("font_face mismatch (-want +got):\n%s", diff)
	}
	if got := apply(t, "font_face", nil); got != "" {
		t.Fatalf("nil font_face = %q", got)
	}
}

func TestFontURL(t *testing.T) {
	legacy := LegacyFont{Family: "Open Sans"}
	if got := FontURL(legacy, ""); got != "https://fonts.shopifycdn.com/preview/open-sans.woff2" {
		t.Fatalf("legacy url = %q", got)
	}
	if got := FontURL(legacy, "woff"); !strings.HasSuffix(got, "open-sans.woff") {
		t.Fatalf("legacy url with format = %q", got)
	}
	descriptor := DescriptorFont{Font: drops.NewFont(fonts.Lookup("arial"))}
	if got := FontURL(descriptor, ""); got != "" {
		t.Fatalf("web-safe url = %q", got)
	}
}

func TestFontModifyReturnsNewValue(t *testing.T) {
	source := drops.NewFont(fonts.Lookup("georgia"))
	modified := FontModify(DescriptorFont{Font: source}, "weight", "bold")

	d, ok := modified.(DescriptorFont)
	if !ok {
		t.Fatalf("modified = %#v", modified)
	}
	if d.Font == source {
		t.Fatalf("font_modify must not reuse the source wrapper")
	}
	if d.Font.Descriptor().Weight != 700 || source.Descriptor().Weight != 400 {
		t.Fatalf("weights: modified %d source %d", d.Font.Descriptor().Weight, source.Descriptor().Weight)
	}

	italic := FontModify(LegacyFont{Family: "Lato", Weight: "300"}, "style", "italic").(LegacyFont)
	if italic.Style != "italic" || italic.Weight != "300" {
		t.Fatalf("legacy modify = %#v", italic)
	}
	if got := FontModify(nil, "weight", 700); got != (LegacyFont{Family: "sans-serif"}) {
		t.Fatalf("nil modify = %#v", got)
	}
	if got := FontModify(LegacyFont{Weight: "400"}, "weight", "600italic").(LegacyFont).Weight; got != "600" {
		t.Fatalf("leading digits weight = %q", got)
	}
}

func TestFontModifyFilterReturnsDrop(t *testing.T) {
	out, ok := apply(t, "font_modify", drops.NewFont(fonts.Lookup("georgia")), "weight", "bold").(*drops.Font)
	if !ok {
		t.Fatalf("font_modify on a font drop should return a font drop")
	}
	if weight, _ := out.Get("weight"); weight != 700 {
		t.Fatalf("weight = %v", weight)
	}

	loose, ok := apply(t, "font_modify", map[string]any{"family": "Lato"}, "weight", 300).(drops.Drop)
	if !ok {
		t.Fatalf("font_modify on a loose font should return a drop")
	}
	got := []any{}
	for _, name := range []string{"family", "weight", "style"} {
		v, _ := loose.Get(name)
		got = append(got, v)
	}
	if diff := cmp.Diff([]any{"Lato", "300", ""}, got); diff != "" {
		t.Fatalf("loose font fields mismatch (-want +got):\n%s", diff)
	}
	if s := Text(loose); s != "Lato" {
		t.Fatalf("loose font text = %q", s)
	}
}

func TestStringFilters(t *testing.T) {
	cases := []struct {
		name string
		in   any
		args []any
		want any
	}{
		{"escape_once", `a &amp; b < "c"`, nil, `a &amp; b &lt; &quot;c&quot;`},
		{"escape_once", "Tom & Jerry's", nil, "Tom &amp; Jerry&#39;s"},
		{"newline_to_br", "a\nb", nil, "a<br>b"},
		{"strip_html", "<p>Hello <b>World</b></p>", nil, "Hello World"},
		{"strip_newlines", "a\r\nb\nc", nil, "abc"},
		{"url_encode", "a b&c/é", nil, "a%20b%26c%2F%C3%A9"},
		{"url_decode", "a%20b", nil, "a b"},
		{"url_decode", "%E0%A4%A", nil, "%E0%A4%A"},
		{"base64_encode", "héllo", nil, "aMOpbGxv"},
		{"base64_decode", "aMOpbGxv", nil, "héllo"},
		{"remove_first", "a-b-c", []any{"-"}, "ab-c"},
		{"remove_last", "a-b-c", []any{"-"}, "a-bc"},
		{"replace_first", "a-b-c", []any{"-", "+"}, "a+b-c"},
		{"replace_last", "a-b-c", []any{"-", "+"}, "a-b+c"},
		{"slice", "Liquid", []any{2}, "quid"},
		{"slice", "Liquid", []any{-3, 2}, "ui"},
		{"camelize", "hello_world-foo bar", nil, "helloWorldFooBar"},
		{"truncate", "Ground control to Major Tom.", []any{20}, "Ground control to..."},
		{"handleize", "Hello, World!", nil, "hello-world"},
		{"capitalize", "hELLO", nil, "Hello"},
	}
	for _, tc := range cases {
		if got := apply(t, tc.name, tc.in, tc.args...); got != tc.want {
			t.Errorf("%s(%q, %v) = %#v, want %#v", tc.name, tc.in, tc.args, got, tc.want)
		}
	}
}

func TestMathFilters(t *testing.T) {
	cases := []struct {
		name string
		in   any
		args []any
		want float64
	}{
		{"abs", "-3", nil, 3},
		{"at_least", 2, []any{5}, 5},
		{"at_most", 7, []any{5}, 5},
		{"ceil", 1.2, nil, 2},
		{"floor", 1.8, nil, 1},
		{"round", 2.5, nil, 3},
		{"round", 3.14159, []any{2}, 3.14},
		{"plus", "4", []any{"bogus"}, 4},
		{"minus", 10, []any{3}, 7},
		{"divided_by", 10, []any{0}, 0},
	}
	for _, tc := range cases {
		if got := apply(t, tc.name, tc.in, tc.args...); got != tc.want {
			t.Errorf("%s(%v, %v) = %#v, want %v", tc.name, tc.in, tc.args, got, tc.want)
		}
	}
}

func TestArrayFilters(t *testing.T) {
	items := []any{
		map[string]any{"title": "banana", "price": 3},
		map[string]any{"title": "Apple", "price": 10},
		map[string]any{"title": "cherry", "price": 1},
	}

	if diff := cmp.Diff([]any{"banana", "Apple", "cherry"}, apply(t, "map", items, "title")); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}
	natural := apply(t, "sort_natural", items, "title").([]any)
	if got := property(natural[0], "title"); got != "Apple" {
		t.Fatalf("sort_natural first = %v", got)
	}
	byPrice := apply(t, "sort", items, "price").([]any)
	if got := property(byPrice[0], "title"); got != "cherry" {
		t.Fatalf("sort by price first = %v", got)
	}
	if diff := cmp.Diff([]any{1, 2}, apply(t, "uniq", []any{1, 2, 1, 2})); diff != "" {
		t.Fatalf("uniq mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"a", "b"}, apply(t, "compact", []any{"a", nil, "b"})); diff != "" {
		t.Fatalf("compact mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"a", "b", "c"}, apply(t, "concat", []string{"a"}, []any{"b", "c"})); diff != "" {
		t.Fatalf("concat mismatch (-want +got):\n%s", diff)
	}
	found := apply(t, "find", items, "title", "Apple")
	if got := property(found, "price"); got != 10 {
		t.Fatalf("find = %v", found)
	}
	if got := len(apply(t, "reject", items, "price", 3).([]any)); got != 2 {
		t.Fatalf("reject kept %d items", got)
	}
}

func TestArrayLimit(t *testing.T) {
	big := make([]any, MaxArraySize+5)
	if got := len(List(big)); got != MaxArraySize {
		t.Fatalf("List length = %d", got)
	}
}

func TestMoney(t *testing.T) {
	cases := []struct {
		name string
		in   any
		args []any
		want string
	}{
		{"money", 1999, nil, "$19.99"},
		{"money", 123456789, nil, "$1,234,567.89"},
		{"money", 1999, []any{"€{{amount_with_comma_separator}}"}, "€19,99"},
		{"money_with_currency", 1000, nil, "$10.00 USD"},
		{"money_without_currency", 250, nil, "2.50"},
		{"money_without_trailing_zeros", 1000, nil, "$10"},
	}
	for _, tc := range cases {
		if got := apply(t, tc.name, tc.in, tc.args...); got != tc.want {
			t.Errorf("%s(%v) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestImageURL(t *testing.T) {
	product := drops.NewProduct(drops.Attributes{
		"featured_image": map[string]any{"src": "https://cdn.example.com/p.jpg"},
	})
	if got := apply(t, "img_url", product, "medium"); got != "https://cdn.example.com/p.jpg" {
		t.Fatalf("img_url(product) = %v", got)
	}
	if got := apply(t, "image_url", map[string]any{"src": "x.png"}); got != "x.png" {
		t.Fatalf("image_url(map) = %v", got)
	}
}

func TestJSONFilterPlainsDrops(t *testing.T) {
	font := drops.NewFont(fonts.Lookup("arial"))
	got := apply(t, "json", font).(string)
	if !strings.Contains(got, `"stack":"Arial, sans-serif"`) {
		t.Fatalf("json = %s", got)
	}
}

func TestText(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{true, "true"},
		{19.5, "19.5"},
		{8.0, "8"},
		{[]any{"a", 1}, "a1"},
		{drops.NewFont(fonts.Lookup("georgia")), "Georgia, serif"},
	}
	for _, tc := range cases {
		if got := Text(tc.in); got != tc.want {
			t.Errorf("Text(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCoreFilters(t *testing.T) {
	cases := []struct {
		name string
		in   any
		args []any
		want any
	}{
		{"default", nil, []any{"fallback"}, "fallback"},
		{"default", "", []any{"fallback"}, "fallback"},
		{"default", false, []any{"fallback"}, "fallback"},
		{"default", []any{}, []any{"fallback"}, "fallback"},
		{"default", "set", []any{"fallback"}, "set"},
		{"default", 0, []any{"fallback"}, 0},
		{"first", []any{"a", "b"}, nil, "a"},
		{"last", []any{"a", "b"}, nil, "b"},
		{"first", "hello", nil, "h"},
		{"last", []any{}, nil, nil},
		{"join", []any{"a", 1, "c"}, []any{", "}, "a, 1, c"},
		{"join", []any{"a", "b"}, nil, "a b"},
		{"escape", `<a href="x">`, nil, "&lt;a href=&#34;x&#34;&gt;"},
		{"asset_url", "theme.css", nil, "/assets/theme.css"},
		{"link_to", "Home", []any{"/"}, `<a href="/">Home</a>`},
		{"pluralize", 1, []any{"item", "items"}, "item"},
		{"pluralize", 3, []any{"item", "items"}, "items"},
		{"date", "not a date", []any{"%Y"}, "not a date"},
	}
	for _, tc := range cases {
		if got := apply(t, tc.name, tc.in, tc.args...); got != tc.want {
			t.Errorf("%s(%v, %v) = %#v, want %#v", tc.name, tc.in, tc.args, got, tc.want)
		}
	}
}

func TestSplit(t *testing.T) {
	got := apply(t, "split", "a,b,,c", ",")
	if diff := cmp.Diff([]any{"a", "b", "", "c"}, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestStrftime(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	cases := map[string]string{
		"%Y-%m-%d":  "2024-03-05",
		"%-d %B %Y": "5 March 2024",
		"%a, %b %e": "Tue, Mar  5",
		"%I:%M %p":  "02:07 PM",
		"%H:%M:%S":  "14:07:09",
		"%y %% %q":  "24 % %q",
		"":          "March 05, 2024",
	}
	for format, want := range cases {
		if got := Strftime(ts, format); got != want {
			t.Errorf("Strftime(%q) = %q, want %q", format, got, want)
		}
	}

	if got := apply(t, "date", "2024-03-05", "%d/%m/%Y"); got != "05/03/2024" {
		t.Fatalf("date filter = %v", got)
	}
}

func TestBlank(t *testing.T) {
	for _, v := range []any{nil, "", "  ", false, []any{}, map[string]any{}} {
		if !Blank(v) {
			t.Errorf("Blank(%#v) = false", v)
		}
	}
	for _, v := range []any{"x", true, 0, []any{1}} {
		if Blank(v) {
			t.Errorf("Blank(%#v) = true", v)
		}
	}
}
