package preview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
)

type fakeRemote struct {
	html string
	err  error
	got  []RemoteRequest
}

func (f *fakeRemote) RenderSection(_ context.Context, req RemoteRequest) (string, error) {
	f.got = append(f.got, req)
	return f.html, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const heroSection = `<div class="hero" onclick="track()">{% style %}.hero { color: {{ section.settings.color }}; }{% endstyle %}<h1>{{ section.settings.heading }}</h1><p>{{ product.title }}</p><script>alert(1)</script></div>` +
	`{% schema %}{"name":"Hero","settings":[{"type":"text","id":"heading","default":"Welcome"},{"type":"color","id":"color","default":"#ff0000"}]}{% endschema %}`

func TestRenderEmptyCode(t *testing.T) {
	o := New(WithLogger(quietLogger()))
	got, err := o.Render(context.Background(), Request{Code: "  \n"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := Result{HTML: EmptyPlaceholder, Mode: ModeFallback}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRejectsLargeCode(t *testing.T) {
	o := New(WithLogger(quietLogger()))
	_, err := o.Render(context.Background(), Request{Code: strings.Repeat("a", MaxCodeSize+1)})
	if !errors.Is(err, ErrCodeTooLarge) {
		t.Fatalf("expected ErrCodeTooLarge, got %v", err)
	}
}

func TestRenderLocalSanitises(t *testing.T) {
	o := New(WithLogger(quietLogger()))
	got, err := o.Render(context.Background(), Request{Code: heroSection})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := Result{
		HTML: `<div class="hero"><style>.hero { color: #ff0000; }</style><h1>Welcome</h1><p>Classic Cotton T-Shirt</p></div>`,
		Mode: ModeFallback,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBlocksFromPreset(t *testing.T) {
	code := `{% schema %}{"name":"List","blocks":[{"type":"item","name":"Item","settings":[{"type":"text","id":"text","default":"d"}]}],` +
		`"presets":[{"name":"List","blocks":[{"type":"item","settings":{"text":"one"}},{"type":"item"}]}]}{% endschema %}` +
		`{% for block in section.blocks %}<p{{ block.shopify_attributes }}>{{ block.id }}:{{ block.settings.text }}</p>{% endfor %}`

	o := New(WithLogger(quietLogger()), WithSanitizer(nil))
	got, err := o.Render(context.Background(), Request{Code: code})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if diff := cmp.Diff("<p>block-0:one</p><p>block-1:d</p>", got.HTML); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSelectedResources(t *testing.T) {
	o := New(WithLogger(quietLogger()))
	got, err := o.Render(context.Background(), Request{
		Code:      "{{ product.title }}|{{ section.id }}|{{ collection.title }}",
		Product:   drops.NewProduct(drops.Attributes{"title": "Chosen", "handle": "chosen"}),
		SectionID: "hero-1",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if diff := cmp.Diff("Chosen|hero-1|Summer Essentials", got.HTML); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPrefersRemote(t *testing.T) {
	remote := &fakeRemote{html: `<p onclick="x()">native</p>`}
	o := New(WithLogger(quietLogger()), WithRemote(remote))

	got, err := o.Render(context.Background(), Request{
		Code:    "{{ product.title }}",
		Product: drops.NewProduct(drops.Attributes{"handle": "tee"}),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := Result{HTML: `<p onclick="x()">native</p>`, Mode: ModeNative}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if len(remote.got) != 1 {
		t.Fatalf("remote called %d times", len(remote.got))
	}
	sent := remote.got[0]
	if sent.SectionID != DefaultSectionID || sent.ProductHandle != "tee" || sent.Settings == nil {
		t.Fatalf("unexpected remote request %+v", sent)
	}
}

func TestRenderFallsBackLocally(t *testing.T) {
	for name, remoteErr := range map[string]error{
		"fallback requested": ErrFallback,
		"remote failure":     errors.New("preview: remote request: connection refused"),
	} {
		t.Run(name, func(t *testing.T) {
			o := New(WithLogger(quietLogger()), WithRemote(&fakeRemote{err: remoteErr}))
			got, err := o.Render(context.Background(), Request{Code: "<b>{{ shop.name }}</b>"})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			want := Result{HTML: "<b>Demo Store</b>", Mode: ModeFallback, RemoteError: remoteErr.Error()}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := New(WithLogger(quietLogger()))
	if _, err := o.Render(ctx, Request{Code: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderLocalError(t *testing.T) {
	o := New(WithLogger(quietLogger()))
	_, err := o.Render(context.Background(), Request{Code: "{% if %}x{% endif %}"})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}
