package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/movi008/rehabit/internal/control"
	"github.com/movi008/rehabit/internal/core/domain"
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Run one generation pipeline and print the result",
	Args:  cobra.MinimumNArgs(1),
	Run:   runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	prompt := strings.Join(args, " ")

	app, err := control.NewService(control.Config{
		Capabilities: cfg.Capabilities,
		Retry:        cfg.Retry,
		Redis:        cfg.Redis,
	})
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}

	result, err := app.Generate(cmd.Context(), domain.Request{Prompt: prompt},
		func(p domain.Progress) {
			fmt.Printf("progress: script=%v voiceover=%v images=%v video=%v\n",
				p.Script, p.Voiceover, p.Images, p.Video)
		})
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			slog.Error("Generation failed",
				"kind", derr.Kind,
				"request_id", derr.RequestID,
				"retryable", derr.Retryable)
			fmt.Fprintln(os.Stderr, derr.UserMessage)
		} else {
			slog.Error("Generation failed", "error", err)
		}
		os.Exit(1)
	}

	fmt.Printf("script:\n%s\n\n", result.Script)
	fmt.Printf("voiceover: %s (%.1fs)\n", result.VoiceoverURL, result.DurationSeconds)
	fmt.Printf("images:    %d generated\n", len(result.Images))
	fmt.Printf("video:     %s\n", result.VideoURL)
}
