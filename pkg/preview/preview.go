package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/drops"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/mockdata"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/render/template"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/render/template/pongo"
	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/schema"
)

const (
	// MaxCodeSize is the largest section source accepted, in bytes.
	MaxCodeSize = 100000

	// DefaultSectionID is exposed as section.id when a request omits one.
	DefaultSectionID = "preview"

	// EmptyPlaceholder is returned for blank section code.
	EmptyPlaceholder = `<p style="color:#6d7175;text-align:center;">No code to preview</p>`
)

var (
	// ErrFallback is returned by a RemoteRenderer that wants the caller to
	// render locally.
	ErrFallback = errors.New("preview: fallback requested")
	// ErrCodeTooLarge rejects section code over MaxCodeSize.
	ErrCodeTooLarge = errors.New("preview: section code too large")
	// ErrRender wraps local rendering failures.
	ErrRender = errors.New("preview: render failed")
)

// Mode reports which renderer produced a Result.
type Mode string

const (
	ModeNative   Mode = "native"
	ModeFallback Mode = "fallback"
)

// RemoteRenderer renders section code with the storefront's own engine.
type RemoteRenderer interface {
	RenderSection(ctx context.Context, req RemoteRequest) (string, error)
}

// RemoteRequest is what a RemoteRenderer receives. Resources travel as
// handles; the storefront resolves them itself.
type RemoteRequest struct {
	Code             string
	SectionID        string
	Settings         *schema.State
	Blocks           []schema.BlockInstance
	ProductHandle    string
	CollectionHandle string
}

// Request describes one preview render.
type Request struct {
	Code string

	// Settings and Blocks default to the schema's initial state and first
	// preset when nil.
	Settings *schema.State
	Blocks   []schema.BlockInstance

	// Resources maps resource setting ids to their selected drops.
	Resources map[string]drops.Drop

	// Selected resources replace the corresponding mock data.
	Product    *drops.Product
	Collection *drops.Collection
	Article    *drops.Article
	Shop       *drops.Shop

	// Preset names a mockdata preset; Data, when set, replaces the preset
	// context entirely.
	Preset string
	Data   mockdata.Context

	SectionID string
}

// Result is a rendered preview.
type Result struct {
	HTML string
	Mode Mode
	// RemoteError holds the remote failure that caused a fallback render.
	RemoteError string
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRemote tries remote before every local render.
func WithRemote(remote RemoteRenderer) Option {
	return func(o *Orchestrator) {
		o.remote = remote
	}
}

// WithEngine replaces the local Liquid engine.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithLogger sets the logger used for fallback decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFontRegistry sets the registry that recognises font settings.
func WithFontRegistry(registry *fonts.Registry) Option {
	return func(o *Orchestrator) {
		o.fonts = registry
	}
}

// WithSanitizer replaces the output policy. Pass nil to return local
// renders unsanitised.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *Orchestrator) {
		o.policy = policy
		o.policySpecified = true
	}
}

// Orchestrator coordinates remote and local section rendering.
type Orchestrator struct {
	remote          RemoteRenderer
	engine          template.TemplateRenderer
	logger          *slog.Logger
	fonts           *fonts.Registry
	policy          *bluemonday.Policy
	policySpecified bool
	initialiseErr   error
}

// New constructs an Orchestrator. Without WithEngine a pongo2-backed engine
// with the standard filters is created.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: slog.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.engine == nil {
		engine, err := pongo.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("preview: default engine: %w", err)
		} else {
			o.engine = engine
		}
	}
	if o.fonts == nil {
		o.fonts = fonts.Default()
	}
	if !o.policySpecified {
		o.policy = sanitizer()
	}
}

// Render produces preview markup for req. Remote failures are logged and
// answered with a local render; only local failures are returned as errors.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("preview: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}
	if len(req.Code) > MaxCodeSize {
		return Result{}, fmt.Errorf("%w: %d bytes", ErrCodeTooLarge, len(req.Code))
	}
	if strings.TrimSpace(req.Code) == "" {
		return Result{HTML: EmptyPlaceholder, Mode: o.defaultMode()}, nil
	}

	req = o.withDefaults(req)

	var remoteErr error
	if o.remote != nil {
		html, err := o.remote.RenderSection(ctx, remoteRequest(req))
		if err == nil {
			return Result{HTML: html, Mode: ModeNative}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		if errors.Is(err, ErrFallback) {
			o.logger.Debug("remote renderer requested fallback", "error", err)
		} else {
			o.logger.Warn("remote render failed, rendering locally", "error", err)
		}
		remoteErr = err
	}

	html, err := o.renderLocal(req)
	if err != nil {
		return Result{}, err
	}
	result := Result{HTML: html, Mode: ModeFallback}
	if remoteErr != nil {
		result.RemoteError = remoteErr.Error()
	}
	return result, nil
}

func (o *Orchestrator) defaultMode() Mode {
	if o.remote != nil {
		return ModeNative
	}
	return ModeFallback
}

// withDefaults fills settings, blocks and the section id from the code's
// configuration block.
func (o *Orchestrator) withDefaults(req Request) Request {
	if req.SectionID == "" {
		req.SectionID = DefaultSectionID
	}
	if req.Settings != nil && req.Blocks != nil {
		return req
	}
	parsed := schema.Parse(req.Code)
	if req.Settings == nil {
		req.Settings = schema.BuildInitialState(schema.ExtractSettings(parsed))
	}
	if req.Blocks == nil {
		req.Blocks = schema.BuildBlockInstances(parsed)
	}
	return req
}

func (o *Orchestrator) renderLocal(req Request) (string, error) {
	data := BuildContext(req, drops.WithFontRegistry(o.fonts))
	o.logger.Debug("rendering section locally", "section_id", req.SectionID, "resources", ResourceSummary(req))

	html, err := o.engine.RenderString(schema.Strip(req.Code), map[string]any(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	if o.policy != nil {
		html = o.policy.Sanitize(html)
	}
	return html, nil
}

func remoteRequest(req Request) RemoteRequest {
	out := RemoteRequest{
		Code:      req.Code,
		SectionID: req.SectionID,
		Settings:  req.Settings,
		Blocks:    req.Blocks,
	}
	if req.Product != nil {
		out.ProductHandle = req.Product.Handle()
	}
	if req.Collection != nil {
		out.CollectionHandle = req.Collection.Handle()
	}
	for _, key := range sortedKeys(req.Resources) {
		switch d := req.Resources[key].(type) {
		case *drops.Product:
			if out.ProductHandle == "" && d != nil {
				out.ProductHandle = d.Handle()
			}
		case *drops.Collection:
			if out.CollectionHandle == "" && d != nil {
				out.CollectionHandle = d.Handle()
			}
		}
	}
	return out
}
