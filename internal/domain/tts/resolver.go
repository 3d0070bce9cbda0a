package tts

import (
	"os"
	"strconv"
	"strings"
)

const defaultScript = "Welcome{name_part} to the {company} {product}. " +
	"You'll answer a short set of questions—focused on how you communicate, decide, and connect. " +
	"Keep it natural. If you need a moment, pause—then continue where you left off. " +
	"Take a comfortable breath... and when you're ready, we'll begin."

// VoiceSettings are the tunable synthesis parameters forwarded to the provider.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Defaults is the server-side synthesis configuration in effect for one request.
type Defaults struct {
	APIKey  string
	VoiceID string
	ModelID string

	Script  string
	Company string
	Product string

	Voice VoiceSettings
}

// Resolver reads synthesis defaults from the environment. Every call re-reads
// the variables so operators can retune voice and script without a restart.
type Resolver struct{}

// NewResolver returns an environment-backed resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Defaults resolves the current synthesis configuration. A missing API key is
// not an error here; the service reports it as a disabled condition.
func (r *Resolver) Defaults() Defaults {
	return Defaults{
		APIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		VoiceID: envString("ELEVENLABS_VOICE_ID", "EXAMPLE_VOICE_ID"),
		ModelID: envString("ELEVENLABS_MODEL_ID", "eleven_monolingual_v1"),
		Script:  envString("PREAMBLE_SCRIPT", defaultScript),
		Company: envString("PREAMBLE_COMPANY", "Western & Southern Financial Group"),
		Product: envString("PREAMBLE_PRODUCT", "AI Adaptive Interview"),
		Voice: VoiceSettings{
			Stability:       envFloat("PREAMBLE_STABILITY", 0.32),
			SimilarityBoost: envFloat("PREAMBLE_SIMILARITY", 0.94),
			Style:           envFloat("PREAMBLE_STYLE", 0.68),
			UseSpeakerBoost: envBool("PREAMBLE_SPEAKER_BOOST", true),
		},
	}
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// envFloat falls back on any parse failure rather than erroring; a bad value
// in the environment must never break synthesis.
func envFloat(name string, fallback float64) float64 {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return f
}

// envBool treats 1/true/yes/on (case-insensitive) as true and anything else,
// including unparsable values, as false. An unset variable keeps the fallback.
func envBool(name string, fallback bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
