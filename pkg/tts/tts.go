package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMissingAPIKey is returned before any network call is attempted when no
// ElevenLabs credential is configured.
var ErrMissingAPIKey = errors.New("missing ElevenLabs API key")

type SynthesizerConfig struct {
	APIKey          string
	Voice           string
	Stability       float64
	SimilarityBoost float64
	BaseURL         string
	Timeout         time.Duration
}

// Synthesizer converts analysis text to narrated audio via the ElevenLabs
// text-to-speech API.
type Synthesizer struct {
	config SynthesizerConfig
	client *http.Client
}

func NewWithConfig(config SynthesizerConfig) Synthesizer {
	if config.Voice == "" {
		config.Voice = "Rachel"
	}
	if config.Stability == 0 {
		config.Stability = 0.5
	}
	if config.SimilarityBoost == 0 {
		config.SimilarityBoost = 0.75
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.elevenlabs.io"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return Synthesizer{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize renders text as MP3 audio. It returns the raw audio bytes on
// success; any non-200 response is an error carrying status and body.
func (s Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload, err := json.Marshal(synthesisRequest{
		Text: text,
		VoiceSettings: voiceSettings{
			Stability:       s.config.Stability,
			SimilarityBoost: s.config.SimilarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.config.BaseURL, s.config.Voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build synthesis request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesis response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech synthesis failed: %d - %s", resp.StatusCode, body)
	}
	return body, nil
}
