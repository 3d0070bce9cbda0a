package tts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DeriveKey fingerprints one effective synthesis request. The voice settings
// are folded in using a fixed field order so the key never depends on map
// iteration, and there is no per-process salt: identical requests hash to the
// same key across restarts, which is what makes the cache shareable.
func DeriveKey(script, voiceID, modelID string, settings VoiceSettings) string {
	h := sha256.New()
	h.Write([]byte(script))
	h.Write([]byte{0})
	h.Write([]byte(voiceID))
	h.Write([]byte{0})
	h.Write([]byte(modelID))
	h.Write([]byte{0})
	fmt.Fprintf(h, "stability=%g;similarity_boost=%g;style=%g;use_speaker_boost=%t",
		settings.Stability, settings.SimilarityBoost, settings.Style, settings.UseSpeakerBoost)
	return hex.EncodeToString(h.Sum(nil))
}
