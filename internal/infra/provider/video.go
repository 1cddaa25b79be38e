package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/movi008/rehabit/internal/core/classify"
	"github.com/movi008/rehabit/internal/core/config"
	"github.com/movi008/rehabit/internal/core/domain"
)

// HTTPVideoAdapter composes the final video via the configured provider's
// render workflow: submit a render job, then poll until it finishes. Any
// step of the workflow can fail and is classified like a direct call.
type HTTPVideoAdapter struct {
	cfg    config.CapabilityConfig
	client *Client
}

// NewHTTPVideoAdapter creates the video adapter.
func NewHTTPVideoAdapter(cfg config.CapabilityConfig) *HTTPVideoAdapter {
	return &HTTPVideoAdapter{cfg: cfg, client: NewClient(cfg.Timeout)}
}

type renderRequest struct {
	Model           string   `json:"model,omitempty"`
	Images          []string `json:"images"`
	AudioURL        string   `json:"audio_url"`
	DurationSeconds float64  `json:"duration_seconds"`
}

type renderResponse struct {
	ID              string  `json:"id"`
	Status          string  `json:"status"` // queued, processing, done, failed
	URL             string  `json:"url,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// Compose implements VideoAdapter.
func (a *HTTPVideoAdapter) Compose(ctx context.Context, images []string, audioURL string, durationSeconds float64) (*VideoResult, error) {
	if derr := checkEnabled(a.cfg, domain.CapabilityVideo); derr != nil {
		return nil, derr
	}
	if derr := requireCredential(a.cfg, domain.CapabilityVideo); derr != nil {
		return nil, derr
	}

	hint := classify.Hint{Provider: a.cfg.Provider}

	// Step 1: submit the render job.
	var job renderResponse
	err := a.client.PostJSON(ctx, baseURL(a.cfg)+"/v1/renders", a.cfg.Credential,
		renderRequest{
			Model:           a.cfg.Model,
			Images:          images,
			AudioURL:        audioURL,
			DurationSeconds: durationSeconds,
		}, &job)
	if err != nil {
		return nil, classify.Error(err, hint)
	}
	if job.ID == "" {
		return nil, domain.NewError(domain.KindAPIInvalidResponse,
			"provider returned no render job ID").
			WithSource(a.cfg.Provider)
	}

	// Step 2: poll until the job reaches a terminal status.
	interval := a.cfg.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	for {
		switch job.Status {
		case "done":
			if job.URL == "" {
				return nil, domain.NewError(domain.KindAPIInvalidResponse,
					"render finished without a video URL").
					WithSource(a.cfg.Provider).
					WithDetail("render_id", job.ID)
			}
			duration := job.DurationSeconds
			if duration == 0 {
				duration = durationSeconds
			}
			return &VideoResult{VideoURL: job.URL, DurationSeconds: duration}, nil
		case "failed":
			msg := job.Error
			if msg == "" {
				msg = "render job failed"
			}
			return nil, classify.Error(fmt.Errorf("render %s: %s", job.ID, msg), hint)
		}

		select {
		case <-ctx.Done():
			return nil, classify.Error(ctx.Err(), hint)
		case <-time.After(interval):
		}

		url := fmt.Sprintf("%s/v1/renders/%s", baseURL(a.cfg), job.ID)
		if err := a.client.GetJSON(ctx, url, a.cfg.Credential, &job); err != nil {
			return nil, classify.Error(err, hint)
		}
	}
}
