package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSynthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotBody SynthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("audio-bytes"))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	audio, err := client.Synthesize(context.Background(), "secret-key", "voice-1", SynthesizeRequest{
		Text:    "Welcome Alex, to the interview.",
		ModelID: "eleven_monolingual_v1",
		VoiceSettings: VoiceSettings{
			Stability:       0.32,
			SimilarityBoost: 0.94,
			Style:           0.68,
			UseSpeakerBoost: true,
		},
	})
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}

	if !bytes.Equal(audio, []byte("audio-bytes")) {
		t.Errorf("unexpected audio: %q", audio)
	}
	if gotPath != "/text-to-speech/voice-1" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotBody.ModelID != "eleven_monolingual_v1" || gotBody.Text == "" {
		t.Errorf("unexpected body: %+v", gotBody)
	}
	if !gotBody.VoiceSettings.UseSpeakerBoost || gotBody.VoiceSettings.Stability != 0.32 {
		t.Errorf("unexpected voice settings: %+v", gotBody.VoiceSettings)
	}
}

func TestSynthesizeNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	_, err := client.Synthesize(context.Background(), "key", "voice", SynthesizeRequest{Text: "hi"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", statusErr.StatusCode)
	}
}

func TestSynthesizeTransportError(t *testing.T) {
	client := NewClientWithBaseURL("http://127.0.0.1:1")
	if _, err := client.Synthesize(context.Background(), "key", "voice", SynthesizeRequest{Text: "hi"}); err == nil {
		t.Fatal("expected transport error")
	}
}
