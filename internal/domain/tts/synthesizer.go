package tts

import (
	"context"
	"errors"

	"interview-server-go/internal/domain/tts/elevenlabs"
	platformerrors "interview-server-go/internal/platform/errors"
)

type elevenLabsSynthesizer struct {
	client *elevenlabs.Client
}

// NewElevenLabsSynthesizer adapts the ElevenLabs client to the Synthesizer
// interface, translating provider status failures into upstream errors.
func NewElevenLabsSynthesizer(client *elevenlabs.Client) Synthesizer {
	return &elevenLabsSynthesizer{client: client}
}

func (s *elevenLabsSynthesizer) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	audio, err := s.client.Synthesize(ctx, req.APIKey, req.VoiceID, elevenlabs.SynthesizeRequest{
		Text:    req.Script,
		ModelID: req.ModelID,
		VoiceSettings: elevenlabs.VoiceSettings{
			Stability:       req.Voice.Stability,
			SimilarityBoost: req.Voice.SimilarityBoost,
			Style:           req.Voice.Style,
			UseSpeakerBoost: req.Voice.UseSpeakerBoost,
		},
	})
	if err != nil {
		var statusErr *elevenlabs.StatusError
		if errors.As(err, &statusErr) {
			return nil, &UpstreamError{StatusCode: statusErr.StatusCode}
		}
		// No status means the provider never answered: timeout, DNS, refused
		// connection.
		return nil, platformerrors.Wrap(platformerrors.KindUpstream, "tts:synthesize", "provider call failed", err)
	}
	return audio, nil
}
