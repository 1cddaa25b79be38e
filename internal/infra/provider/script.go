package provider

import (
	"context"
	"errors"

	"github.com/movi008/rehabit/internal/core/classify"
	"github.com/movi008/rehabit/internal/core/config"
	"github.com/movi008/rehabit/internal/core/domain"
)

// HTTPScriptAdapter generates narration text via the configured provider's
// completion endpoint. No demo fallback: a missing credential fails fast.
type HTTPScriptAdapter struct {
	cfg    config.CapabilityConfig
	client *Client
}

// NewHTTPScriptAdapter creates the script adapter.
func NewHTTPScriptAdapter(cfg config.CapabilityConfig) *HTTPScriptAdapter {
	return &HTTPScriptAdapter{cfg: cfg, client: NewClient(cfg.Timeout)}
}

type scriptRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type scriptResponse struct {
	Text       string `json:"text"`
	TokenCount int    `json:"token_count"`
	Error      string `json:"error,omitempty"`
}

// Generate implements ScriptAdapter.
func (a *HTTPScriptAdapter) Generate(ctx context.Context, prompt string) (*ScriptResult, error) {
	if derr := checkEnabled(a.cfg, domain.CapabilityScript); derr != nil {
		return nil, derr
	}
	if derr := requireCredential(a.cfg, domain.CapabilityScript); derr != nil {
		return nil, derr
	}

	var resp scriptResponse
	err := a.client.PostJSON(ctx, baseURL(a.cfg)+"/v1/completions", a.cfg.Credential,
		scriptRequest{Model: a.cfg.Model, Prompt: prompt}, &resp)
	if err != nil {
		return nil, classify.Error(err, classify.Hint{Provider: a.cfg.Provider})
	}
	if resp.Error != "" {
		// Providers report some failures in-band with a 200.
		return nil, classify.Error(errors.New(resp.Error),
			classify.Hint{Provider: a.cfg.Provider})
	}

	if resp.Text == "" {
		return nil, domain.NewError(domain.KindAPIInvalidResponse,
			"provider returned an empty script").
			WithSource(a.cfg.Provider)
	}

	return &ScriptResult{Text: resp.Text, TokenCount: resp.TokenCount}, nil
}
