package tts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalmind/legalmind/pkg/tts"
)

func TestSynthesize(t *testing.T) {
	audio := []byte("mp3-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/Rachel", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))

		var payload struct {
			Text          string `json:"text"`
			VoiceSettings struct {
				Stability       float64 `json:"stability"`
				SimilarityBoost float64 `json:"similarity_boost"`
			} `json:"voice_settings"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Hello there", payload.Text)
		assert.Equal(t, 0.5, payload.VoiceSettings.Stability)
		assert.Equal(t, 0.75, payload.VoiceSettings.SimilarityBoost)

		w.Write(audio)
	}))
	defer srv.Close()

	s := tts.NewWithConfig(tts.SynthesizerConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})

	got, err := s.Synthesize(context.Background(), "Hello there")

	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestSynthesizeServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid key"}`))
	}))
	defer srv.Close()

	s := tts.NewWithConfig(tts.SynthesizerConfig{
		APIKey:  "bad-key",
		BaseURL: srv.URL,
	})

	_, err := s.Synthesize(context.Background(), "Hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid key")
}

func TestSynthesizeMissingKey(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))
	defer srv.Close()

	s := tts.NewWithConfig(tts.SynthesizerConfig{BaseURL: srv.URL})

	_, err := s.Synthesize(context.Background(), "Hello")

	assert.ErrorIs(t, err, tts.ErrMissingAPIKey)
	assert.Zero(t, requests, "no network call should be made without a credential")
}

func TestSynthesizeCustomVoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/Bella", r.URL.Path)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	s := tts.NewWithConfig(tts.SynthesizerConfig{
		APIKey:  "test-key",
		Voice:   "Bella",
		BaseURL: srv.URL,
	})

	_, err := s.Synthesize(context.Background(), "Hello")
	require.NoError(t, err)
}
