// Package provider implements the capability adapters for the generation
// pipeline.
//
// This package contains:
//   - one adapter per capability: script, image, voice, video
//   - a shared JSON HTTP client used by all adapters
//   - a Registry bundling the four adapters for the orchestrator
//
// Every adapter checks its capability configuration before doing any network
// work and classifies provider failures before raising them, so callers only
// ever see *domain.Error values.
package provider

import (
	"context"
	"fmt"

	"github.com/movi008/rehabit/internal/core/config"
	"github.com/movi008/rehabit/internal/core/domain"
)

// ScriptResult is the output of the script capability.
type ScriptResult struct {
	Text       string
	TokenCount int
}

// ImageResult is the output of the image capability.
type ImageResult struct {
	Images []string // data URIs or URLs, in generation order
}

// VoiceResult is the output of the voice capability.
type VoiceResult struct {
	AudioURL        string
	DurationSeconds float64
}

// VideoResult is the output of the video capability.
type VideoResult struct {
	VideoURL        string
	DurationSeconds float64
}

// ScriptAdapter turns a prompt into narration text.
type ScriptAdapter interface {
	Generate(ctx context.Context, prompt string) (*ScriptResult, error)
}

// ImageAdapter turns a prompt into a set of images.
type ImageAdapter interface {
	Generate(ctx context.Context, prompt string, count int) (*ImageResult, error)
}

// VoiceAdapter turns narration text into a voiceover.
type VoiceAdapter interface {
	Synthesize(ctx context.Context, text string) (*VoiceResult, error)
}

// VideoAdapter composes images and a voiceover into a video.
type VideoAdapter interface {
	Compose(ctx context.Context, images []string, audioURL string, durationSeconds float64) (*VideoResult, error)
}

// Registry bundles one adapter per capability.
type Registry struct {
	Script ScriptAdapter
	Image  ImageAdapter
	Voice  VoiceAdapter
	Video  VideoAdapter
}

// NewRegistry builds HTTP-backed adapters from per-capability configuration.
func NewRegistry(caps config.Capabilities) Registry {
	return Registry{
		Script: NewHTTPScriptAdapter(caps.Script),
		Image:  NewHTTPImageAdapter(caps.Image),
		Voice:  NewHTTPVoiceAdapter(caps.Voice),
		Video:  NewHTTPVideoAdapter(caps.Video),
	}
}

// checkEnabled fails fast when a capability is switched off. This is a
// deterministic configuration error and is never retried.
func checkEnabled(cfg config.CapabilityConfig, capability domain.Capability) *domain.Error {
	if !cfg.Enabled {
		return domain.NewError(domain.KindAIServiceUnavailable,
			fmt.Sprintf("%s capability is disabled", capability)).
			WithSource(cfg.Provider).
			WithDetail("capability", string(capability))
	}
	return nil
}

// requireCredential fails fast when no credential is configured. Adapters
// with a demo fallback (image) call checkEnabled only and handle the missing
// credential themselves.
func requireCredential(cfg config.CapabilityConfig, capability domain.Capability) *domain.Error {
	if cfg.Credential == "" {
		return domain.NewError(domain.KindAIServiceUnavailable,
			fmt.Sprintf("no credential configured for %s capability", capability)).
			WithSource(cfg.Provider).
			WithDetail("capability", string(capability))
	}
	return nil
}

// baseURL returns the configured endpoint, falling back to a conventional
// per-provider default.
func baseURL(cfg config.CapabilityConfig) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return fmt.Sprintf("https://api.%s.com", cfg.Provider)
}
