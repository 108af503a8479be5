package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/diff"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/mockdata"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/preview"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/prompt"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/validation"
)

var errUsage = errors.New("sectionkit: invalid usage")

func newFlagSet(e *env, name, args string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(e.stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: sectionkit %s [flags] %s\n", name, args)
		flags.PrintDefaults()
	}
	return flags
}

func parseArgs(flags *flag.FlagSet, args []string, want int) ([]string, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() != want {
		return nil, fmt.Errorf("%w: %s expects %d argument(s), got %d", errUsage, flags.Name(), want, flags.NArg())
	}
	return flags.Args(), nil
}

func loadSection(ctx context.Context, path string) (schema.Document, error) {
	return schema.NewLoader().Load(ctx, schema.SourceFromFile(path))
}

func runValidate(ctx context.Context, e *env, args []string) error {
	flags := newFlagSet(e, "validate", "FILE")
	asJSON := flags.Bool("json", false, "print the result as JSON")
	files, err := parseArgs(flags, args, 1)
	if err != nil {
		return err
	}

	doc, err := loadSection(ctx, files[0])
	if err != nil {
		return err
	}
	result := validation.Validate(doc.Code())
	e.logger.Debug("validated section", "file", doc.Location(), "errors", len(result.Errors), "warnings", len(result.Warnings))

	if *asJSON {
		if err := writeJSON(e, result); err != nil {
			return err
		}
	} else {
		newStyles(e.stdout).printReport(e.stdout, doc.Location(), result)
	}
	if !result.Valid {
		return errFailed
	}
	return nil
}

func runDiff(ctx context.Context, e *env, args []string) error {
	flags := newFlagSet(e, "diff", "OLD NEW")
	contextLines := flags.Int("context", diff.DefaultContextLines, "unchanged lines shown around each change")
	asJSON := flags.Bool("json", false, "print the result as JSON")
	files, err := parseArgs(flags, args, 2)
	if err != nil {
		return err
	}

	before, err := loadSection(ctx, files[0])
	if err != nil {
		return err
	}
	after, err := loadSection(ctx, files[1])
	if err != nil {
		return err
	}
	result := diff.Calculate(before.Code(), after.Code(), diff.WithContextLines(*contextLines))

	if *asJSON {
		return writeJSON(e, result)
	}
	newStyles(e.stdout).printDiff(e.stdout, result)
	return nil
}

func runSettings(ctx context.Context, e *env, args []string) error {
	flags := newFlagSet(e, "settings", "FILE")
	interactive := flags.Bool("interactive", false, "edit each setting before printing")
	files, err := parseArgs(flags, args, 1)
	if err != nil {
		return err
	}

	doc, err := loadSection(ctx, files[0])
	if err != nil {
		return err
	}
	parsed := doc.Schema()
	if parsed == nil {
		e.logger.Warn("section has no parseable schema block", "file", doc.Location())
	}
	settings := schema.ExtractSettings(parsed)
	state := schema.BuildInitialState(settings)
	if *interactive {
		state, err = newEditor(e).EditSettings(ctx, settings, state)
		if err != nil {
			return err
		}
	}
	return writeJSON(e, state)
}

func runPreview(ctx context.Context, e *env, args []string) error {
	flags := newFlagSet(e, "preview", "FILE")
	presetID := flags.String("preset", "", "mock data preset id (see presets)")
	dataPath := flags.String("data", "", "YAML or JSON file merged over the mock data")
	rawSettings := flags.String("settings", "", "JSON object merged over the initial settings")
	sectionID := flags.String("section-id", preview.DefaultSectionID, "value of section.id")
	remoteURL := flags.String("remote", "", "storefront render proxy endpoint")
	shopDomain := flags.String("shop", "", "shop domain sent to the render proxy")
	output := flags.String("output", "", "output file (stdout if empty)")
	interactive := flags.Bool("interactive", false, "edit settings and blocks before rendering")
	files, err := parseArgs(flags, args, 1)
	if err != nil {
		return err
	}

	doc, err := loadSection(ctx, files[0])
	if err != nil {
		return err
	}
	if *presetID != "" {
		if _, err := mockdata.Lookup(*presetID); err != nil {
			return err
		}
	}

	parsed := doc.Schema()
	settings := schema.ExtractSettings(parsed)
	state := schema.BuildInitialState(settings)
	if *rawSettings != "" {
		var overrides map[string]any
		if err := json.Unmarshal([]byte(*rawSettings), &overrides); err != nil {
			return fmt.Errorf("%w: -settings must be a JSON object: %v", errUsage, err)
		}
		state.Merge(overrides)
	}
	blocks := schema.BuildBlockInstances(parsed)
	if *interactive {
		editor := newEditor(e)
		if state, err = editor.EditSettings(ctx, settings, state); err != nil {
			return err
		}
		if blocks, err = editor.EditBlocks(ctx, parsed, blocks); err != nil {
			return err
		}
	}

	req := preview.Request{
		Code:      doc.Code(),
		Settings:  state,
		Blocks:    blocks,
		Preset:    *presetID,
		SectionID: *sectionID,
	}
	if *dataPath != "" {
		payload, err := os.ReadFile(*dataPath)
		if err != nil {
			return fmt.Errorf("sectionkit: read data: %w", err)
		}
		req.Data, err = mockdata.MergeCustomData(mockdata.ContextFromPreset(*presetID), payload)
		if err != nil {
			return err
		}
	}
	e.logger.Debug("preview resources", "detected", preview.DetectResources(req.Code).Summary(), "selected", preview.ResourceSummary(req))

	options := []preview.Option{preview.WithLogger(e.logger)}
	if *remoteURL != "" {
		options = append(options, preview.WithRemote(preview.NewHTTPRenderer(*remoteURL, *shopDomain)))
	}
	result, err := preview.New(options...).Render(ctx, req)
	if err != nil {
		return err
	}
	e.logger.Info("rendered preview", "file", doc.Location(), "mode", result.Mode)

	if *output != "" {
		if err := os.WriteFile(*output, []byte(result.HTML), 0o644); err != nil {
			return fmt.Errorf("sectionkit: write output: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(e.stdout, result.HTML)
	return err
}

func runFonts(_ context.Context, e *env, args []string) error {
	flags := newFlagSet(e, "fonts", "")
	if _, err := parseArgs(flags, args, 0); err != nil {
		return err
	}
	newStyles(e.stdout).printFonts(e.stdout, fonts.Options())
	return nil
}

func runPresets(_ context.Context, e *env, args []string) error {
	flags := newFlagSet(e, "presets", "")
	category := flags.String("category", "", "only list presets of this category (product, collection, cart)")
	if _, err := parseArgs(flags, args, 0); err != nil {
		return err
	}
	presets := mockdata.Presets()
	if *category != "" {
		presets = mockdata.PresetsIn(mockdata.Category(strings.ToLower(*category)))
	}
	newStyles(e.stdout).printPresets(e.stdout, presets)
	return nil
}

var newEditor = func(e *env) *prompt.Editor {
	return prompt.New(prompt.WithDriver(prompt.NewSurveyDriver(e.stderr)))
}

func writeJSON(e *env, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("sectionkit: encode output: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("sectionkit: indent output: %w", err)
	}
	buf.WriteByte('\n')
	_, err = e.stdout.Write(buf.Bytes())
	return err
}
