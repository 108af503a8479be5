package preview

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/mockdata"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

func TestBuildContextDefaults(t *testing.T) {
	data := BuildContext(Request{})

	product, ok := data["product"].(*drops.Product)
	if !ok || product.Title() != "Classic Cotton T-Shirt" {
		t.Fatalf("product = %#v", data["product"])
	}
	if _, ok := data["shop"].(*drops.Shop); !ok {
		t.Fatalf("shop = %#v", data["shop"])
	}
	if _, ok := data["article"]; ok {
		t.Fatalf("article should be absent, got %#v", data["article"])
	}
	collections, ok := data["collections"].(*drops.Collections)
	if !ok || collections.Len() != 1 {
		t.Fatalf("collections = %#v", data["collections"])
	}

	section, ok := data["section"].(map[string]any)
	if !ok {
		t.Fatalf("section = %#v", data["section"])
	}
	if section["id"] != DefaultSectionID {
		t.Fatalf("section id = %v", section["id"])
	}
	if blocks, _ := section["blocks"].([]any); len(blocks) != 0 {
		t.Fatalf("blocks = %#v", blocks)
	}
}

func TestBuildContextPresetAndCustomData(t *testing.T) {
	data := BuildContext(Request{Preset: "cart-with-items"})
	cart, ok := data["cart"].(map[string]any)
	if !ok || cart["item_count"] != 3 {
		t.Fatalf("cart = %#v", data["cart"])
	}

	custom := BuildContext(Request{Data: mockdata.Context{
		"shop":   map[string]any{"name": "Custom"},
		"banner": "hello",
	}})
	if shop := custom["shop"].(*drops.Shop); shop.Name() != "Custom" {
		t.Fatalf("shop name = %q", shop.Name())
	}
	if _, ok := custom["product"]; ok {
		t.Fatal("product should be absent without product data")
	}
	if custom["banner"] != "hello" {
		t.Fatalf("banner = %#v", custom["banner"])
	}
}

func TestBuildContextBlocks(t *testing.T) {
	settings := schema.NewState()
	settings.Set("text", "one")
	data := BuildContext(Request{
		Blocks: []schema.BlockInstance{{ID: "block-0", Type: "item", Settings: settings}},
	})

	blocks := data["section"].(map[string]any)["blocks"].([]any)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %#v", blocks)
	}
	block := blocks[0].(map[string]any)
	text, _ := block["settings"].(*drops.SectionSettings).Get("text")
	got := []any{block["id"], block["type"], block["shopify_attributes"], text}
	if diff := cmp.Diff([]any{"block-0", "item", "", "one"}, got); diff != "" {
		t.Fatalf("block mismatch (-want +got):\n%s", diff)
	}
}

func TestResourceSummary(t *testing.T) {
	if got := ResourceSummary(Request{}); got != "Using default shop data" {
		t.Fatalf("empty summary = %q", got)
	}
	got := ResourceSummary(Request{
		Product:    drops.NewProduct(drops.Attributes{"title": "Tee"}),
		Collection: drops.NewCollection(drops.Attributes{"title": "Summer"}),
	})
	if got != "Product: Tee, Collection: Summer" {
		t.Fatalf("summary = %q", got)
	}
}

func TestDetectResources(t *testing.T) {
	cases := []struct {
		code string
		want ResourceNeeds
	}{
		{"", ResourceNeeds{}},
		{"<p>static</p>", ResourceNeeds{}},
		{"{{ product.title }}", ResourceNeeds{Product: true}},
		{"{% for v in product.variants %}{% endfor %}", ResourceNeeds{Product: true}},
		{"{% for product in collection.products %}{% endfor %}", ResourceNeeds{Product: true, Collection: true}},
		{"{{ collections['all'].title }}", ResourceNeeds{Collection: true}},
		{"{{- article.title }}{{ blog.title }}{{ cart.item_count }}", ResourceNeeds{Article: true, Blog: true, Cart: true}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, DetectResources(tc.code)); diff != "" {
			t.Errorf("DetectResources(%q) mismatch (-want +got):\n%s", tc.code, diff)
		}
	}
}

func TestResourceNeedsSummary(t *testing.T) {
	if got := (ResourceNeeds{}).Summary(); got != "No specific resources detected" {
		t.Fatalf("empty summary = %q", got)
	}
	if got := (ResourceNeeds{Product: true, Cart: true}).Summary(); got != "Detected: Product, Cart" {
		t.Fatalf("summary = %q", got)
	}
}
