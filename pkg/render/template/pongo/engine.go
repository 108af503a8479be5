package pongo

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/filters"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/render/template"
)

// DefaultCacheSize bounds the number of compiled templates an Engine keeps.
const DefaultCacheSize = 64

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates  fs.FS
	extension  string
	filters    filters.Set
	globalData map[string]any
	cacheSize  int
}

// WithFS configures the engine to load named templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension used by
// RenderTemplate.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithFilters replaces the default storefront filter set.
func WithFilters(set filters.Set) Option {
	return func(cfg *config) {
		if set != nil {
			cfg.filters = set
		}
	}
}

// WithGlobalData seeds global context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithCacheSize bounds the compiled template cache. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(cfg *config) {
		if n >= 0 {
			cfg.cacheSize = n
		}
	}
}

type compiled struct {
	tmpl     *pongo2.Template
	literals []any
}

// Engine satisfies template.TemplateRenderer for Liquid sources using a
// pongo2 template set. An Engine is safe for concurrent use.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	files       fs.FS
	filters     filters.Set
	cache       map[[sha256.Size]byte]*compiled
	cacheSize   int
	tplExt      string
}

var _ template.TemplateRenderer = (*Engine)(nil)

var noTemplates embed.FS

// sandboxedTags are pongo2 tags that reach outside the rendered string.
var sandboxedTags = []string{"include", "import", "extends", "ssi"}

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: ".liquid",
		filters:   filters.Standard(),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	registerTags()

	var loader pongo2.TemplateLoader = pongo2.NewFSLoader(noTemplates)
	if cfg.templates != nil {
		loader = pongo2.NewFSLoader(cfg.templates)
	}
	set := pongo2.NewSet("sections", loader)
	for _, name := range sandboxedTags {
		if err := set.BanTag(name); err != nil {
			return nil, fmt.Errorf("pongo: ban tag %q: %w", name, err)
		}
	}

	engine := &Engine{
		templateSet: set,
		files:       cfg.templates,
		filters:     maps.Clone(cfg.filters),
		cache:       make(map[[sha256.Size]byte]*compiled),
		cacheSize:   cfg.cacheSize,
		tplExt:      cfg.extension,
	}
	set.Globals = engine.helpers()

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("pongo: apply global data: %w", err)
	}
	return engine, nil
}

func (e *Engine) helpers() pongo2.Context {
	return pongo2.Context{
		"liquid_text":    text,
		"liquid_get":     lookup,
		"liquid_var":     variable,
		"liquid_truthy":  truthy,
		"liquid_compare": compare,
		"liquid_range":   numberRange,
		"liquid_filter":  e.applyFilter,
		"liquid_empty":   emptyValue{},
		"liquid_blank":   blankValue{},
	}
}

// applyFilter runs a registered filter. Unknown filters pass their input
// through unchanged.
func (e *Engine) applyFilter(name string, input any, args ...any) any {
	fn, ok := e.filters[name]
	if !ok {
		return input
	}
	return fn(input, args...)
}

// Render renders name as inline content when it contains Liquid delimiters,
// otherwise as a named template.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if isTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate loads a Liquid file from the configured fs.FS and renders it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("pongo: engine is nil")
	}
	if e.files == nil {
		return "", errors.New("pongo: no template filesystem configured")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}
	source, err := fs.ReadFile(e.files, templatePath)
	if err != nil {
		return "", fmt.Errorf("pongo: load template %q: %w", templatePath, err)
	}
	rendered, err := e.execute(string(source), data)
	if err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", templatePath, err)
	}
	return writeOut(rendered, out)
}

// RenderString translates and renders Liquid source.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("pongo: engine is nil")
	}
	rendered, err := e.execute(templateContent, data)
	if err != nil {
		return "", fmt.Errorf("pongo: execute template string: %w", err)
	}
	return writeOut(rendered, out)
}

// RegisterFilter adds or replaces a filter for subsequent renders.
func (e *Engine) RegisterFilter(name string, fn filters.Func) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.filters = e.filters.Merge(filters.Set{name: fn})
	return nil
}

// GlobalContext seeds global data visible to every render.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("pongo: engine is nil")
	}
	if data == nil {
		return nil
	}

	globalCtx, err := convertToContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.templateSet.Globals.Update(globalCtx)
	return nil
}

func (e *Engine) execute(source string, data any) (string, error) {
	tpl, err := e.compile(source)
	if err != nil {
		return "", err
	}
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("convert data: %w", err)
	}
	viewContext["liquid_literals"] = tpl.literals

	var buf bytes.Buffer

	e.mu.RLock()
	err = tpl.tmpl.ExecuteWriterUnbuffered(viewContext, &buf)
	e.mu.RUnlock()

	var perr *pongo2.Error
	if errors.As(err, &perr) && (perr.OrigError == errBreak || perr.OrigError == errContinue) {
		// A stray break stops rendering, keeping what was written so far.
		err = nil
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Engine) compile(source string) (*compiled, error) {
	key := sha256.Sum256([]byte(source))

	e.mu.RLock()
	if tpl, ok := e.cache[key]; ok {
		e.mu.RUnlock()
		return tpl, nil
	}
	e.mu.RUnlock()

	translation, err := Translate(source)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.cache[key]; ok {
		return tpl, nil
	}
	tmpl, err := e.templateSet.FromString(translation.Source)
	if err != nil {
		return nil, fmt.Errorf("parse translated template: %w", err)
	}
	tpl := &compiled{tmpl: tmpl, literals: translation.Literals}
	if e.cacheSize > 0 {
		if len(e.cache) >= e.cacheSize {
			clear(e.cache)
		}
		e.cache[key] = tpl
	}
	return tpl, nil
}

func writeOut(rendered string, out []io.Writer) (string, error) {
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func isTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return convertMapToContext(v), nil
	case map[string]any:
		return convertMapToContext(v), nil
	default:
		m, err := jsonToMap(v)
		if err != nil {
			return nil, err
		}
		return convertMapToContext(m), nil
	}
}

// convertMapToContext keeps values as they are so drops reach the helpers
// intact. Keys pongo2 cannot address are dropped.
func convertMapToContext(in map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if !plainIdent.MatchString(key) {
			continue
		}
		out[key] = value
	}
	return out
}

func jsonToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
