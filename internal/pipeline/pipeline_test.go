package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/movi008/rehabit/internal/core/domain"
	"github.com/movi008/rehabit/internal/infra/provider"
)

type mockScript struct {
	calls int
	fail  error
}

func (m *mockScript) Generate(_ context.Context, prompt string) (*provider.ScriptResult, error) {
	m.calls++
	if m.fail != nil {
		return nil, m.fail
	}
	return &provider.ScriptResult{Text: "narration for " + prompt, TokenCount: 12}, nil
}

type mockVoice struct {
	calls int
	fail  error
}

func (m *mockVoice) Synthesize(_ context.Context, text string) (*provider.VoiceResult, error) {
	m.calls++
	if m.fail != nil {
		return nil, m.fail
	}
	return &provider.VoiceResult{AudioURL: "https://cdn.example.com/v.mp3", DurationSeconds: 18.5}, nil
}

type mockImage struct {
	calls      int
	fail       error
	lastPrompt string
}

func (m *mockImage) Generate(_ context.Context, prompt string, count int) (*provider.ImageResult, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.fail != nil {
		return nil, m.fail
	}
	images := make([]string, count)
	for i := range images {
		images[i] = "https://cdn.example.com/img.png"
	}
	return &provider.ImageResult{Images: images}, nil
}

type mockVideo struct {
	calls int
	fail  error
}

func (m *mockVideo) Compose(_ context.Context, images []string, audioURL string, duration float64) (*provider.VideoResult, error) {
	m.calls++
	if m.fail != nil {
		return nil, m.fail
	}
	return &provider.VideoResult{VideoURL: "https://cdn.example.com/final.mp4", DurationSeconds: duration}, nil
}

type mocks struct {
	script *mockScript
	voice  *mockVoice
	image  *mockImage
	video  *mockVideo
}

func newMocks() (*mocks, provider.Registry) {
	m := &mocks{
		script: &mockScript{},
		voice:  &mockVoice{},
		image:  &mockImage{},
		video:  &mockVideo{},
	}
	return m, provider.Registry{
		Script: m.script,
		Voice:  m.voice,
		Image:  m.image,
		Video:  m.video,
	}
}

func TestRun_Success(t *testing.T) {
	m, reg := newMocks()
	runner := NewRunner(reg, nil, 3)

	var emissions []domain.Progress
	result, err := runner.Run(context.Background(),
		domain.Request{Prompt: "sunrise meditation"},
		func(p domain.Progress) { emissions = append(emissions, p) })
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Script == "" {
		t.Error("empty script")
	}
	if result.VoiceoverURL == "" {
		t.Error("empty voiceover URL")
	}
	if len(result.Images) != 3 {
		t.Errorf("got %d images, want 3", len(result.Images))
	}
	if result.VideoURL == "" {
		t.Error("empty video URL")
	}
	if result.DurationSeconds != 18.5 {
		t.Errorf("DurationSeconds = %v, want the voice stage's 18.5", result.DurationSeconds)
	}

	// Images come from the original prompt, not the script.
	if m.image.lastPrompt != "sunrise meditation" {
		t.Errorf("image prompt = %q, want original prompt", m.image.lastPrompt)
	}

	// Two emissions per stage: before start and after completion.
	if len(emissions) != 8 {
		t.Fatalf("got %d progress emissions, want 8", len(emissions))
	}
	last := emissions[len(emissions)-1]
	if !last.Script || !last.Voiceover || !last.Images || !last.Video {
		t.Errorf("final progress incomplete: %+v", last)
	}
}

func TestRun_ProgressMonotonicity(t *testing.T) {
	_, reg := newMocks()
	runner := NewRunner(reg, nil, 1)

	var prev domain.Progress
	regressed := func(before, after bool) bool { return before && !after }

	_, err := runner.Run(context.Background(), domain.Request{Prompt: "p"},
		func(p domain.Progress) {
			if regressed(prev.Script, p.Script) || regressed(prev.Voiceover, p.Voiceover) ||
				regressed(prev.Images, p.Images) || regressed(prev.Video, p.Video) {
				t.Errorf("progress regressed: %+v -> %+v", prev, p)
			}
			prev = p
		})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestRun_StageOrder(t *testing.T) {
	// Voiceover runs before images: a voice failure must leave the image
	// and video adapters untouched.
	m, reg := newMocks()
	m.voice.fail = errors.New("quota exceeded for voice minutes")
	runner := NewRunner(reg, nil, 1)

	_, err := runner.Run(context.Background(), domain.Request{Prompt: "p"}, nil)
	if err == nil {
		t.Fatal("expected failure")
	}

	var derr *domain.Error
	if !errors.As(err, &derr) {
		t.Fatalf("error is not a *domain.Error: %v", err)
	}
	// Raw error from a mock: the orchestrator normalizes it, and without a
	// provider hint the fallback applies.
	if derr.Kind != domain.KindUnexpectedError {
		t.Errorf("kind = %s, want UNEXPECTED_ERROR for raw mock failure", derr.Kind)
	}

	if m.script.calls != 1 {
		t.Errorf("script calls = %d, want 1", m.script.calls)
	}
	if m.image.calls != 0 {
		t.Errorf("image calls = %d, want 0", m.image.calls)
	}
	if m.video.calls != 0 {
		t.Errorf("video calls = %d, want 0", m.video.calls)
	}
}

func TestRun_ClassifiedErrorPassesThroughUnchanged(t *testing.T) {
	m, reg := newMocks()
	orig := domain.NewError(domain.KindAIQuotaExceeded, "monthly quota exhausted").
		WithSource("elevenlabs")
	m.voice.fail = orig
	runner := NewRunner(reg, nil, 1)

	_, err := runner.Run(context.Background(), domain.Request{Prompt: "p"}, nil)

	var derr *domain.Error
	if !errors.As(err, &derr) {
		t.Fatalf("error is not a *domain.Error: %v", err)
	}
	if derr != orig {
		t.Error("orchestrator re-classified an already-classified error")
	}
	if m.image.calls != 0 || m.video.calls != 0 {
		t.Error("stages after the failure were invoked")
	}
}

func TestRun_NoPartialResultOnFailure(t *testing.T) {
	for _, failing := range []string{"script", "voiceover", "images", "video"} {
		m, reg := newMocks()
		fail := domain.NewError(domain.KindAIGenerationFailed, "boom")
		switch failing {
		case "script":
			m.script.fail = fail
		case "voiceover":
			m.voice.fail = fail
		case "images":
			m.image.fail = fail
		case "video":
			m.video.fail = fail
		}

		runner := NewRunner(reg, nil, 1)
		result, err := runner.Run(context.Background(), domain.Request{Prompt: "p"}, nil)
		if err == nil {
			t.Errorf("%s failure: expected error", failing)
		}
		if result != nil {
			t.Errorf("%s failure: got partial result %+v", failing, result)
		}
	}
}

func TestRun_PanickingCallbackAborts(t *testing.T) {
	m, reg := newMocks()
	runner := NewRunner(reg, nil, 1)

	_, err := runner.Run(context.Background(), domain.Request{Prompt: "p"},
		func(domain.Progress) { panic("observer bug") })

	var derr *domain.Error
	if !errors.As(err, &derr) {
		t.Fatalf("error is not a *domain.Error: %v", err)
	}
	if derr.Kind != domain.KindUnexpectedError {
		t.Errorf("kind = %s, want UNEXPECTED_ERROR", derr.Kind)
	}
	// The first emission precedes the first stage, so nothing ran.
	if m.script.calls != 0 {
		t.Errorf("script calls = %d, want 0", m.script.calls)
	}
}

func TestRun_NilCallbackAllowed(t *testing.T) {
	_, reg := newMocks()
	runner := NewRunner(reg, nil, 1)
	if _, err := runner.Run(context.Background(), domain.Request{Prompt: "p"}, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}
