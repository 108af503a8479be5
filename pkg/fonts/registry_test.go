package fonts_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"
)

func TestLookupKnownIdentifier(t *testing.T) {
	want := fonts.Descriptor{
		Family:           "Times New Roman",
		FallbackFamilies: "serif",
		Stack:            `"Times New Roman", Times, serif`,
		Style:            "normal",
		Weight:           400,
	}
	if diff := cmp.Diff(want, fonts.Lookup("times")); diff != "" {
		t.Fatalf("lookup mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupFallsBackToSystemUI(t *testing.T) {
	got := fonts.Lookup("comic-sans")
	if got.Family != "System UI" {
		t.Fatalf("expected system-ui fallback, got %q", got.Family)
	}
	if got != fonts.Lookup(fonts.BaseIdentifier) {
		t.Fatalf("fallback should equal base entry")
	}
}

func TestIsKnown(t *testing.T) {
	if !fonts.IsKnown("georgia") {
		t.Fatal("georgia should be known")
	}
	for _, v := range []string{"", "Georgia", "not-a-font", "#ffffff"} {
		if fonts.IsKnown(v) {
			t.Fatalf("%q should not be known", v)
		}
	}
}

func TestOptionsKeepRegistrationOrder(t *testing.T) {
	opts := fonts.Options()
	if len(opts) != 10 {
		t.Fatalf("expected 10 options, got %d", len(opts))
	}
	wantOrder := []string{"system-ui", "arial", "helvetica", "georgia", "times", "courier", "verdana", "trebuchet", "tahoma", "palatino"}
	var gotOrder []string
	for _, o := range opts {
		gotOrder = append(gotOrder, o.Value)
	}
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if opts[3].Label != "Georgia" || opts[3].Stack != "Georgia, serif" {
		t.Fatalf("unexpected georgia option %+v", opts[3])
	}
}

func TestCustomRegistryWithoutBase(t *testing.T) {
	reg := fonts.NewRegistry(
		fonts.Font{ID: "mono", Descriptor: fonts.Descriptor{Family: "Mono"}},
		fonts.Font{ID: "mono", Descriptor: fonts.Descriptor{Family: "Mono 2"}},
	)
	if got := reg.Lookup("missing").Family; got != "Mono 2" {
		t.Fatalf("expected first entry fallback with replaced descriptor, got %q", got)
	}
	if diff := cmp.Diff([]string{"mono"}, reg.Identifiers()); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
}
