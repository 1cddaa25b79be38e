package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/movi008/rehabit/internal/core/config"
	"github.com/movi008/rehabit/internal/core/domain"
	"github.com/movi008/rehabit/internal/infra/provider"
	"github.com/movi008/rehabit/internal/pipeline"
	"github.com/movi008/rehabit/internal/retry"
)

// Scratch entrypoint for exercising the pipeline against real providers
// without the daemon. Configuration comes straight from the environment.
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	scriptKey := os.Getenv("SCRIPT_API_KEY")
	voiceKey := os.Getenv("VOICE_API_KEY")
	videoKey := os.Getenv("VIDEO_API_KEY")
	if scriptKey == "" || voiceKey == "" || videoKey == "" {
		log.Fatalf("SCRIPT_API_KEY, VOICE_API_KEY and VIDEO_API_KEY must be set")
	}

	ctx := context.Background()

	// 1. Build adapters. The image capability runs in demo mode when
	// IMAGE_API_KEY is absent.
	adapters := provider.NewRegistry(config.Capabilities{
		Script: config.CapabilityConfig{
			Provider: "openai", Model: "gpt-4o-mini",
			Enabled: true, Credential: scriptKey,
		},
		Image: config.CapabilityConfig{
			Provider: "openai", Model: "dall-e-3",
			Enabled: true, Credential: os.Getenv("IMAGE_API_KEY"),
		},
		Voice: config.CapabilityConfig{
			Provider: "elevenlabs", Model: "eleven_turbo_v2",
			Enabled: true, Credential: voiceKey,
		},
		Video: config.CapabilityConfig{
			Provider: "shotstack",
			Enabled:  true, Credential: videoKey,
			PollInterval: 3 * time.Second,
		},
	})

	// 2. Wrap a single run in the default retry policy.
	runner := pipeline.NewRunner(adapters, nil, 4)
	result, err := retry.Do(ctx, retry.DefaultConfig,
		func(ctx context.Context) (*domain.Result, error) {
			return runner.Run(ctx, domain.Request{Prompt: "sunrise meditation"},
				func(p domain.Progress) {
					fmt.Printf("progress: %+v\n", p)
				})
		})
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	fmt.Println("=== Result ===")
	fmt.Printf("script: %.80s...\n", result.Script)
	fmt.Printf("voiceover: %s (%.1fs)\n", result.VoiceoverURL, result.DurationSeconds)
	fmt.Printf("images: %d\n", len(result.Images))
	fmt.Printf("video: %s\n", result.VideoURL)
}
