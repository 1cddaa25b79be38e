package provider

import (
	"context"

	"github.com/movi008/rehabit/internal/core/classify"
	"github.com/movi008/rehabit/internal/core/config"
	"github.com/movi008/rehabit/internal/core/domain"
)

// PlaceholderImage is the fixed output used when the image capability has no
// credential. A 1x1 gray PNG, small enough to inline anywhere a real image
// URL is expected.
const PlaceholderImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNsaGj4DwAFhAJ/mNbrtQAAAABJRU5ErkJggg=="

// HTTPImageAdapter generates images via the configured provider. This is
// the one adapter with a demo fallback: when no credential is configured it
// returns placeholder images instead of failing, so the rest of the pipeline
// stays usable without an image provider account.
type HTTPImageAdapter struct {
	cfg    config.CapabilityConfig
	client *Client
}

// NewHTTPImageAdapter creates the image adapter.
func NewHTTPImageAdapter(cfg config.CapabilityConfig) *HTTPImageAdapter {
	return &HTTPImageAdapter{cfg: cfg, client: NewClient(cfg.Timeout)}
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Count  int    `json:"n"`
}

type imageResponse struct {
	Images []string `json:"images"`
}

// Generate implements ImageAdapter.
func (a *HTTPImageAdapter) Generate(ctx context.Context, prompt string, count int) (*ImageResult, error) {
	if derr := checkEnabled(a.cfg, domain.CapabilityImage); derr != nil {
		return nil, derr
	}
	if count <= 0 {
		count = 1
	}

	// Demo mode: no credential, no provider call.
	if a.cfg.Credential == "" {
		images := make([]string, count)
		for i := range images {
			images[i] = PlaceholderImage
		}
		return &ImageResult{Images: images}, nil
	}

	var resp imageResponse
	err := a.client.PostJSON(ctx, baseURL(a.cfg)+"/v1/images/generations", a.cfg.Credential,
		imageRequest{Model: a.cfg.Model, Prompt: prompt, Count: count}, &resp)
	if err != nil {
		return nil, classify.Error(err, classify.Hint{Provider: a.cfg.Provider})
	}

	if len(resp.Images) == 0 {
		return nil, domain.NewError(domain.KindAPIInvalidResponse,
			"provider returned no images").
			WithSource(a.cfg.Provider)
	}

	return &ImageResult{Images: resp.Images}, nil
}
