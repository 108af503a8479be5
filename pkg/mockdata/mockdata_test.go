package mockdata

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
)

func TestEmbeddedLibraryLoads(t *testing.T) {
	if _, err := load(); err != nil {
		t.Fatalf("load embedded data: %v", err)
	}
}

func TestPresetsGroupedByCategory(t *testing.T) {
	var got []string
	for _, p := range Presets() {
		got = append(got, string(p.Category)+"/"+p.ID)
	}
	want := []string{
		"product/product-on-sale",
		"product/product-sold-out",
		"product/product-many-variants",
		"collection/collection-empty",
		"collection/collection-large",
		"cart/cart-empty",
		"cart/cart-with-items",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("presets mismatch (-want +got):\n%s", diff)
	}
	if n := len(PresetsIn(CategoryCart)); n != 2 {
		t.Fatalf("cart presets = %d", n)
	}
}

func TestDefaultContext(t *testing.T) {
	ctx := DefaultContext()
	wantRequest := map[string]any{"design_mode": true, "page_type": "product", "path": "/products/demo"}
	if diff := cmp.Diff(wantRequest, ctx["request"]); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
	if v, ok := ctx["customer"]; !ok || v != nil {
		t.Fatalf("customer = %#v, %v", v, ok)
	}

	product := drops.NewProduct(drops.Attributes(ctx["product"].(map[string]any)))
	if product.Title() != "Classic Cotton T-Shirt" || len(product.Variants()) != 3 {
		t.Fatalf("product = %q with %d variants", product.Title(), len(product.Variants()))
	}

	ctx["shop"].(map[string]any)["name"] = "mutated"
	if DefaultContext()["shop"].(map[string]any)["name"] != "Demo Store" {
		t.Fatalf("default context shares state between calls")
	}
}

func TestContextFromPreset(t *testing.T) {
	ctx := ContextFromPreset("product-on-sale")
	product := ctx["product"].(map[string]any)
	if product["title"] != "Merino Wool Sweater" {
		t.Fatalf("product title = %v", product["title"])
	}
	if ctx["collection"].(map[string]any)["title"] != "Summer Essentials" {
		t.Fatalf("collection should come from defaults")
	}

	cart := ContextFromPreset("cart-with-items")
	if cart["cart"].(map[string]any)["item_count"] != 3 {
		t.Fatalf("cart = %#v", cart["cart"])
	}

	if diff := cmp.Diff(DefaultContext(), ContextFromPreset("missing")); diff != "" {
		t.Fatalf("unknown preset mismatch (-want +got):\n%s", diff)
	}
	if _, err := Lookup("missing"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestMergeCustomData(t *testing.T) {
	base := Context{"shop": map[string]any{"name": "Base"}, "request": "keep"}

	merged, err := MergeCustomData(base, []byte(`{"shop": {"name": "Custom"}, "extra": [1, 2]}`))
	if err != nil {
		t.Fatalf("merge JSON: %v", err)
	}
	want := Context{"shop": map[string]any{"name": "Custom"}, "request": "keep", "extra": []any{1, 2}}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged mismatch (-want +got):\n%s", diff)
	}

	merged, err = MergeCustomData(base, []byte("shop:\n  name: From YAML\n"))
	if err != nil {
		t.Fatalf("merge YAML: %v", err)
	}
	if merged["shop"].(map[string]any)["name"] != "From YAML" {
		t.Fatalf("shop = %#v", merged["shop"])
	}

	unchanged, err := MergeCustomData(base, []byte(`{"shop": `))
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if diff := cmp.Diff(base, unchanged); diff != "" {
		t.Fatalf("base changed (-want +got):\n%s", diff)
	}
}

func TestLoadLibraryErrors(t *testing.T) {
	if _, err := loadLibrary(fstest.MapFS{}); err == nil {
		t.Fatalf("expected error for missing files")
	}
	files := fstest.MapFS{
		"defaults.yaml": {Data: []byte("shop: {name: X}\n")},
		"presets.yaml":  {Data: []byte("product: [oops\n")},
	}
	if _, err := loadLibrary(files); err == nil {
		t.Fatalf("expected error for malformed presets")
	}
}
