package provider

import (
	"context"
	"errors"

	"github.com/movi008/rehabit/internal/core/classify"
	"github.com/movi008/rehabit/internal/core/config"
	"github.com/movi008/rehabit/internal/core/domain"
)

// HTTPVoiceAdapter synthesizes a voiceover via the configured provider's
// text-to-speech endpoint. No demo fallback.
type HTTPVoiceAdapter struct {
	cfg    config.CapabilityConfig
	client *Client
}

// NewHTTPVoiceAdapter creates the voice adapter.
func NewHTTPVoiceAdapter(cfg config.CapabilityConfig) *HTTPVoiceAdapter {
	return &HTTPVoiceAdapter{cfg: cfg, client: NewClient(cfg.Timeout)}
}

type voiceRequest struct {
	Model   string `json:"model"`
	VoiceID string `json:"voice_id,omitempty"`
	Text    string `json:"text"`
}

type voiceResponse struct {
	AudioURL        string  `json:"audio_url"`
	DurationSeconds float64 `json:"duration_seconds"`
	Error           string  `json:"error,omitempty"`
}

// Synthesize implements VoiceAdapter.
func (a *HTTPVoiceAdapter) Synthesize(ctx context.Context, text string) (*VoiceResult, error) {
	if derr := checkEnabled(a.cfg, domain.CapabilityVoice); derr != nil {
		return nil, derr
	}
	if derr := requireCredential(a.cfg, domain.CapabilityVoice); derr != nil {
		return nil, derr
	}

	var resp voiceResponse
	err := a.client.PostJSON(ctx, baseURL(a.cfg)+"/v1/text-to-speech", a.cfg.Credential,
		voiceRequest{Model: a.cfg.Model, VoiceID: a.cfg.VoiceID, Text: text}, &resp)
	if err != nil {
		return nil, classify.Error(err, classify.Hint{Provider: a.cfg.Provider})
	}
	if resp.Error != "" {
		// Providers report some failures in-band with a 200.
		return nil, classify.Error(errors.New(resp.Error),
			classify.Hint{Provider: a.cfg.Provider})
	}

	if resp.AudioURL == "" {
		return nil, domain.NewError(domain.KindAPIInvalidResponse,
			"provider returned no audio URL").
			WithSource(a.cfg.Provider)
	}

	return &VoiceResult{AudioURL: resp.AudioURL, DurationSeconds: resp.DurationSeconds}, nil
}
