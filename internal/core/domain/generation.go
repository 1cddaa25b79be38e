package domain

// Capability identifies one logical generation function backed by a
// configurable external provider.
type Capability string

const (
	CapabilityScript Capability = "script"
	CapabilityImage  Capability = "image"
	CapabilityVoice  Capability = "voice"
	CapabilityVideo  Capability = "video"
)

// Request is the sole external input to a pipeline run.
type Request struct {
	Prompt string `json:"prompt"`
}

// Progress is the set of completed-stage flags for one run. Flags only ever
// flip from false to true within a run; emissions never regress.
type Progress struct {
	Script    bool `json:"script"`
	Voiceover bool `json:"voiceover"`
	Images    bool `json:"images"`
	Video     bool `json:"video"`
}

// Result is the composite artifact produced by a fully successful run.
// Partial results are never returned: a failed run yields an *Error only.
type Result struct {
	Script          string   `json:"script"`
	VoiceoverURL    string   `json:"voiceoverUrl"`
	Images          []string `json:"images"`
	VideoURL        string   `json:"videoUrl"`
	DurationSeconds float64  `json:"duration"`
}
