package sectiongen

import (
	"context"
	"io/fs"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/diff"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/mockdata"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/preview"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/validation"
)

// PreviewRequest describes one preview render; alias exported via the root
// package for convenience.
type PreviewRequest = preview.Request

// PreviewResult is a rendered preview.
type PreviewResult = preview.Result

// ValidationResult aggregates the failed rules of one validation run.
type ValidationResult = validation.SchemaValidationResult

// DiffResult is the output of Diff.
type DiffResult = diff.Result

// Schema is a parsed section configuration block.
type Schema = schema.Schema

// State is an ordered settings state.
type State = schema.State

// NewPreviewer exposes the preview orchestrator constructor from the
// top-level module.
func NewPreviewer(options ...preview.Option) *preview.Orchestrator {
	return preview.New(options...)
}

// Preview renders section code with the schema defaults and mock data. It is
// the simplest entry point for callers that just want HTML output.
func Preview(ctx context.Context, code string, options ...preview.Option) (PreviewResult, error) {
	return preview.New(options...).Render(ctx, preview.Request{Code: code})
}

// PreviewWithPreset renders section code against a named mock data preset.
func PreviewWithPreset(ctx context.Context, code, presetID string, options ...preview.Option) (PreviewResult, error) {
	if _, err := mockdata.Lookup(presetID); err != nil {
		return PreviewResult{}, err
	}
	return preview.New(options...).Render(ctx, preview.Request{Code: code, Preset: presetID})
}

// Validate runs the default schema rules against section code.
func Validate(code string) ValidationResult {
	return validation.Validate(code)
}

// Diff compares two versions of section code line by line.
func Diff(oldCode, newCode string, options ...diff.Option) DiffResult {
	return diff.Calculate(oldCode, newCode, options...)
}

// ParseSchema decodes the configuration block; nil when absent or malformed.
func ParseSchema(code string) *Schema {
	return schema.Parse(code)
}

// InitialState computes the starting settings state of section code.
func InitialState(code string) *State {
	return schema.BuildInitialState(schema.ExtractSettings(schema.Parse(code)))
}

// NewLoader constructs a section loader.
func NewLoader(options ...schema.LoaderOption) *schema.Loader {
	return schema.NewLoader(options...)
}

// EmbeddedMockData exposes the bundled mock data preset files so callers can
// inspect or extend them without importing the mockdata package directly.
func EmbeddedMockData() fs.FS {
	return mockdata.EmbeddedFS()
}
