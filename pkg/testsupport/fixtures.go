package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

// LoadSection reads a section fixture into a schema.Document using a file
// source. Failures abort the test.
func LoadSection(t *testing.T, path string) schema.Document {
	t.Helper()

	doc, err := LoadSectionFromPath(path)
	if err != nil {
		t.Fatalf("load section: %v", err)
	}
	return doc
}

// LoadSectionFromPath returns a Document without requiring testing.T.
func LoadSectionFromPath(path string) (schema.Document, error) {
	if path == "" {
		return schema.Document{}, errors.New("testsupport: section path is required")
	}
	doc, err := schema.NewLoader().Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: %w", err)
	}
	return doc, nil
}

// MustLoadState loads a JSON golden file into an ordered settings State.
func MustLoadState(t *testing.T, path string) *schema.State {
	t.Helper()

	state := schema.NewState()
	if err := json.Unmarshal(MustReadGolden(t, path), state); err != nil {
		t.Fatalf("unmarshal state golden: %v", err)
	}
	return state
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its content without
// the trailing newline.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(bytes.TrimRight(MustReadGolden(t, path), "\n"))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, append(bytes.TrimRight(data, "\n"), '\n'))
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureRenderOutput runs a render function that also writes to an
// io.Writer and returns both the result and the writer contents.
func CaptureRenderOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}
