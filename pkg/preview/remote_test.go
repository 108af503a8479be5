package preview

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

func decodeText(t *testing.T, s string) string {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return string(b)
}

func TestHTTPRendererRequest(t *testing.T) {
	var received proxyRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"html":"<p>ok</p>","mode":"native"}`))
	}))
	defer server.Close()

	settings := schema.NewState()
	settings.Set("title", "Hi")
	settings.Set("count", 3)
	blockSettings := schema.NewState()
	blockSettings.Set("text", "one")

	renderer := NewHTTPRenderer(server.URL, "demo.myshopify.com")
	html, err := renderer.RenderSection(context.Background(), RemoteRequest{
		Code:             "{{ product.title }}",
		Settings:         settings,
		Blocks:           []schema.BlockInstance{{ID: "block-0", Type: "item", Settings: blockSettings}},
		ProductHandle:    "tee",
		CollectionHandle: "summer",
	})
	if err != nil {
		t.Fatalf("RenderSection: %v", err)
	}
	if html != "<p>ok</p>" {
		t.Fatalf("html = %q", html)
	}

	got := []string{
		received.ShopDomain,
		decodeText(t, received.Code),
		received.SectionID,
		decodeText(t, received.Settings),
		decodeText(t, received.Blocks),
		received.Product,
		received.Collection,
	}
	want := []string{
		"demo.myshopify.com",
		"{{ product.title }}",
		"preview",
		`{"title":"Hi","count":3}`,
		`[{"id":"block-0","type":"item","settings":{"text":"one"}}]`,
		"tee",
		"summer",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPRendererOmitsEmptyFields(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_, _ = w.Write([]byte(`{"html":"x"}`))
	}))
	defer server.Close()

	if _, err := NewHTTPRenderer(server.URL, "demo").RenderSection(context.Background(), RemoteRequest{Code: "x"}); err != nil {
		t.Fatalf("RenderSection: %v", err)
	}
	if diff := cmp.Diff([]string{"code", "section_id", "shopDomain"}, sortedKeys(raw)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPRendererErrors(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		fallback bool
		message  string
	}{
		{name: "fallback mode", status: http.StatusOK, body: `{"mode":"fallback","error":"store password protected"}`, fallback: true, message: "store password protected"},
		{name: "error field", status: http.StatusOK, body: `{"error":"liquid error"}`, message: "liquid error"},
		{name: "http status with error", status: http.StatusBadGateway, body: `{"error":"upstream down"}`, message: "upstream down"},
		{name: "http status", status: http.StatusInternalServerError, body: `oops`, message: "HTTP 500"},
		{name: "invalid json", status: http.StatusOK, body: `oops`, message: "decode remote response"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewHTTPRenderer(server.URL, "demo").RenderSection(context.Background(), RemoteRequest{Code: "x"})
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrFallback) != tc.fallback {
				t.Fatalf("errors.Is(err, ErrFallback) = %v for %v", !tc.fallback, err)
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("error %q does not mention %q", err, tc.message)
			}
		})
	}
}

func TestHTTPRendererWithoutShopDomain(t *testing.T) {
	_, err := NewHTTPRenderer("http://127.0.0.1:0", " ").RenderSection(context.Background(), RemoteRequest{Code: "x"})
	if !errors.Is(err, ErrFallback) {
		t.Fatalf("expected ErrFallback, got %v", err)
	}
}
