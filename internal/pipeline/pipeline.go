// Package pipeline runs the sequential generation pipeline:
// script → voiceover → images → video.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/movi008/rehabit/internal/core/classify"
	"github.com/movi008/rehabit/internal/core/domain"
	"github.com/movi008/rehabit/internal/infra/provider"
	"github.com/movi008/rehabit/internal/telemetry"
)

// ProgressFunc receives progress snapshots. It is invoked synchronously in
// stage order; implementations should return quickly.
type ProgressFunc func(domain.Progress)

// Runner orchestrates one generation pipeline run per Run call. Runs share
// no mutable state, so a single Runner is safe for concurrent use.
type Runner struct {
	adapters   provider.Registry
	sink       telemetry.Sink
	imageCount int
}

// NewRunner creates a Runner. A nil sink disables telemetry.
func NewRunner(adapters provider.Registry, sink telemetry.Sink, imageCount int) *Runner {
	if sink == nil {
		sink = telemetry.NopSink{}
	}
	if imageCount <= 0 {
		imageCount = 1
	}
	return &Runner{adapters: adapters, sink: sink, imageCount: imageCount}
}

// runState threads stage outputs through the pipeline. Owned by one run.
type runState struct {
	prompt string
	script *provider.ScriptResult
	voice  *provider.VoiceResult
	images *provider.ImageResult
	video  *provider.VideoResult
}

// stage describes one pipeline step: which capability it invokes, how its
// input derives from prior outputs, and which progress flag it completes.
// The pipeline shape is this ordered list, not a hard-coded call chain.
type stage struct {
	name string
	run  func(ctx context.Context, r *Runner, s *runState) error
	mark func(p *domain.Progress)
}

var stages = []stage{
	{
		name: "script",
		run: func(ctx context.Context, r *Runner, s *runState) error {
			out, err := r.adapters.Script.Generate(ctx, s.prompt)
			s.script = out
			return err
		},
		mark: func(p *domain.Progress) { p.Script = true },
	},
	{
		name: "voiceover",
		run: func(ctx context.Context, r *Runner, s *runState) error {
			out, err := r.adapters.Voice.Synthesize(ctx, s.script.Text)
			s.voice = out
			return err
		},
		mark: func(p *domain.Progress) { p.Voiceover = true },
	},
	{
		// Images are deliberately derived from the original prompt rather
		// than the generated script, keeping visuals anchored to user
		// intent.
		name: "images",
		run: func(ctx context.Context, r *Runner, s *runState) error {
			out, err := r.adapters.Image.Generate(ctx, s.prompt, r.imageCount)
			s.images = out
			return err
		},
		mark: func(p *domain.Progress) { p.Images = true },
	},
	{
		name: "video",
		run: func(ctx context.Context, r *Runner, s *runState) error {
			out, err := r.adapters.Video.Compose(ctx,
				s.images.Images, s.voice.AudioURL, s.voice.DurationSeconds)
			s.video = out
			return err
		},
		mark: func(p *domain.Progress) { p.Video = true },
	},
}

// Run executes the pipeline for one request. Stages run strictly in order;
// the first failure aborts the run and no partial result is ever returned.
// Run itself performs no retry; that concern is layered outside.
func (r *Runner) Run(ctx context.Context, req domain.Request, onProgress ProgressFunc) (*domain.Result, error) {
	telemetry.GenerationsInFlight.Inc()
	defer telemetry.GenerationsInFlight.Dec()

	state := &runState{prompt: req.Prompt}
	var progress domain.Progress

	for _, st := range stages {
		if derr := emit(onProgress, progress); derr != nil {
			r.record(ctx, st.name, derr)
			return nil, derr
		}

		start := time.Now()
		err := st.run(ctx, r, state)
		if err != nil {
			derr := classify.Error(err, classify.Hint{})
			r.record(ctx, st.name, derr)
			return nil, derr
		}

		telemetry.StageLatency.WithLabelValues(st.name).Observe(time.Since(start).Seconds())
		telemetry.StagesCompleted.WithLabelValues(st.name).Inc()

		st.mark(&progress)
		if derr := emit(onProgress, progress); derr != nil {
			r.record(ctx, st.name, derr)
			return nil, derr
		}

		r.sink.Record(ctx, telemetry.Info("pipeline",
			fmt.Sprintf("%s stage completed", st.name),
			map[string]any{"elapsed_ms": time.Since(start).Milliseconds()}))
	}

	return &domain.Result{
		Script:          state.script.Text,
		VoiceoverURL:    state.voice.AudioURL,
		Images:          state.images.Images,
		VideoURL:        state.video.VideoURL,
		DurationSeconds: state.voice.DurationSeconds,
	}, nil
}

func (r *Runner) record(ctx context.Context, stageName string, derr *domain.Error) {
	telemetry.GenerationErrors.WithLabelValues(stageName, string(derr.Kind)).Inc()
	r.sink.Record(ctx, telemetry.FromError(derr))
}

// emit delivers a progress snapshot, converting a panicking callback into a
// domain error so a broken observer cannot corrupt pipeline state.
func emit(onProgress ProgressFunc, p domain.Progress) (derr *domain.Error) {
	if onProgress == nil {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			derr = domain.NewError(domain.KindUnexpectedError,
				fmt.Sprintf("progress callback panicked: %v", rec))
		}
	}()
	onProgress(p)
	return nil
}
