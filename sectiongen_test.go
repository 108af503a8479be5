package sectiongen

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/mockdata"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/preview"
)

const banner = `<p>{{ section.settings.heading }}|{{ cart.item_count }}</p>
{% schema %}{"name":"Banner","settings":[{"type":"text","id":"heading","default":"Hi"}],"presets":[{"name":"Banner"}]}{% endschema %}`

func TestPreviewFacade(t *testing.T) {
	got, err := Preview(context.Background(), banner, preview.WithSanitizer(nil))
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if diff := cmp.Diff("<p>Hi|</p>\n", got.HTML); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s", diff)
	}

	got, err = PreviewWithPreset(context.Background(), banner, "cart-with-items", preview.WithSanitizer(nil))
	if err != nil {
		t.Fatalf("PreviewWithPreset: %v", err)
	}
	if diff := cmp.Diff("<p>Hi|3</p>\n", got.HTML); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s", diff)
	}

	if _, err := PreviewWithPreset(context.Background(), banner, "nope"); !errors.Is(err, mockdata.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestValidateAndDiffFacade(t *testing.T) {
	if result := Validate(banner); !result.Valid {
		t.Fatalf("expected valid section, got %+v", result.Errors)
	}
	result := Diff("a\nb", "a\nc")
	if !result.HasDiff || result.Stats.Additions != 1 || result.Stats.Deletions != 1 {
		t.Fatalf("unexpected diff %+v", result.Stats)
	}
}

func TestSchemaFacade(t *testing.T) {
	if s := ParseSchema(banner); s == nil || s.Name != "Banner" {
		t.Fatalf("ParseSchema = %+v", s)
	}
	if diff := cmp.Diff(map[string]any{"heading": "Hi"}, InitialState(banner).Map()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedMockDataContainsPresets(t *testing.T) {
	entries, err := fs.ReadDir(EmbeddedMockData(), ".")
	if err != nil {
		t.Fatalf("read embedded mock data: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected embedded preset files")
	}
}
