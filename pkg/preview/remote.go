package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const defaultRemoteTimeout = 10 * time.Second

// HTTPOption customises an HTTPRenderer.
type HTTPOption func(*HTTPRenderer)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(r *HTTPRenderer) {
		if client != nil {
			r.client = client
		}
	}
}

// HTTPRenderer posts sections to a storefront render proxy.
type HTTPRenderer struct {
	endpoint   string
	shopDomain string
	client     *http.Client
}

var _ RemoteRenderer = (*HTTPRenderer)(nil)

// NewHTTPRenderer targets endpoint on behalf of shopDomain.
func NewHTTPRenderer(endpoint, shopDomain string, options ...HTTPOption) *HTTPRenderer {
	r := &HTTPRenderer{
		endpoint:   endpoint,
		shopDomain: strings.TrimSpace(shopDomain),
		client:     &http.Client{Timeout: defaultRemoteTimeout},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

type proxyRequest struct {
	ShopDomain string `json:"shopDomain"`
	Code       string `json:"code"`
	SectionID  string `json:"section_id"`
	Settings   string `json:"settings,omitempty"`
	Blocks     string `json:"blocks,omitempty"`
	Product    string `json:"product,omitempty"`
	Collection string `json:"collection,omitempty"`
}

type proxyResponse struct {
	HTML  string `json:"html"`
	Mode  Mode   `json:"mode"`
	Error string `json:"error"`
}

// RenderSection sends the section. Text values travel base64 encoded. A
// response in fallback mode, or a missing shop domain, yields ErrFallback.
func (r *HTTPRenderer) RenderSection(ctx context.Context, req RemoteRequest) (string, error) {
	if r.shopDomain == "" {
		return "", fmt.Errorf("%w: shop domain not configured", ErrFallback)
	}

	body, err := r.encode(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("preview: build remote request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("preview: remote request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("preview: read remote response: %w", err)
	}
	var result proxyResponse
	decodeErr := json.Unmarshal(raw, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && result.Error != "" {
			return "", fmt.Errorf("preview: remote render: %s", result.Error)
		}
		return "", fmt.Errorf("preview: remote render: HTTP %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("preview: decode remote response: %w", decodeErr)
	}
	if result.Mode == ModeFallback {
		reason := result.Error
		if reason == "" {
			reason = "server indicated fallback mode"
		}
		return "", fmt.Errorf("%w: %s", ErrFallback, reason)
	}
	if result.Error != "" {
		return "", errors.New("preview: remote render: " + result.Error)
	}
	return result.HTML, nil
}

func (r *HTTPRenderer) encode(req RemoteRequest) ([]byte, error) {
	payload := proxyRequest{
		ShopDomain: r.shopDomain,
		Code:       encodeText([]byte(req.Code)),
		SectionID:  req.SectionID,
		Product:    req.ProductHandle,
		Collection: req.CollectionHandle,
	}
	if payload.SectionID == "" {
		payload.SectionID = DefaultSectionID
	}
	if req.Settings.Len() > 0 {
		settings, err := json.Marshal(req.Settings)
		if err != nil {
			return nil, fmt.Errorf("preview: encode settings: %w", err)
		}
		payload.Settings = encodeText(settings)
	}
	if len(req.Blocks) > 0 {
		blocks, err := json.Marshal(req.Blocks)
		if err != nil {
			return nil, fmt.Errorf("preview: encode blocks: %w", err)
		}
		payload.Blocks = encodeText(blocks)
	}
	return json.Marshal(payload)
}

func encodeText(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
