// Package elevenlabs is a minimal client for the ElevenLabs text-to-speech
// HTTP API. It only covers the single synthesis call the preamble endpoint
// needs; the response body is opaque audio.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// BaseURL is the production API root; tests point the client elsewhere.
	BaseURL = "https://api.elevenlabs.io/v1"

	// synthesisTimeout is a hard ceiling on one provider call.
	synthesisTimeout = 30 * time.Second
)

// VoiceSettings mirror the provider's voice_settings JSON object.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// SynthesizeRequest carries one synthesis call.
type SynthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// StatusError reports a non-200 provider response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("elevenlabs status %d", e.StatusCode)
}

// Client calls the ElevenLabs API with a bounded timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client against the production API.
func NewClient() *Client {
	return NewClientWithBaseURL(BaseURL)
}

// NewClientWithBaseURL builds a client against an alternate API root,
// primarily for tests running against a stub server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: synthesisTimeout,
		},
	}
}

// Synthesize posts text to the given voice and returns raw audio bytes.
// The API key is passed per call because it is resolved from the environment
// per request, not fixed at construction.
func (c *Client) Synthesize(ctx context.Context, apiKey, voiceID string, req SynthesizeRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, voiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create synthesis request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", apiKey)
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesis response: %w", err)
	}
	return audio, nil
}
