package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/legalmind/legalmind/internal/models"
	"github.com/legalmind/legalmind/internal/types"
	"github.com/legalmind/legalmind/pkg/triage"
	"github.com/legalmind/legalmind/pkg/tts"
)

// speakMaxChars caps narration input; longer analysis text is truncated
// before synthesis.
const speakMaxChars = 500

// maxUploadBytes caps multipart document uploads.
const maxUploadBytes = 20 << 20

type Config struct {
	Addr string
}

// Server exposes the clause analysis pipeline over HTTP.
type Server struct {
	config      Config
	pipeline    types.DocumentPipeline
	analyzer    types.ClauseAnalyzer
	synthesizer types.SpeechSynthesizer
	logger      *slog.Logger
}

func New(config Config, pipeline types.DocumentPipeline, analyzer types.ClauseAnalyzer, synthesizer types.SpeechSynthesizer, logger *slog.Logger) *Server {
	if config.Addr == "" {
		config.Addr = ":8000"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config:      config,
		pipeline:    pipeline,
		analyzer:    analyzer,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Router builds the HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Post("/analyze/", s.handleAnalyze)
	r.Post("/summarize/", s.handleSummarize)
	r.Post("/grantie/analyze/", s.handleGrantieAnalyze)
	r.Post("/grantie/compliance/", s.handleGrantieCompliance)
	r.Post("/grantie/full-analysis/", s.handleFullAnalysis)
	r.Post("/speak/", s.handleSpeak)

	return r
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("server listening", "addr", s.config.Addr)
	return http.ListenAndServe(s.config.Addr, s.Router())
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Legal Document Analyzer with Grantie is running!",
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	records := s.pipeline.AnalyzeUpload(r.Context(), filename, content)
	writeJSON(w, http.StatusOK, map[string]any{"clauses": records})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	summary := s.analyzer.Summarize(r.Context(), payload.Text)
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary.Message()})
}

func (s *Server) handleGrantieAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No text provided for analysis"})
		return
	}

	analysis := s.analyzer.AnalyzeDocumentWarranties(r.Context(), payload.Text)
	writeJSON(w, http.StatusOK, map[string]any{"grantie_analysis": analysis})
}

func (s *Server) handleGrantieCompliance(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Clauses []models.ClauseAnalysisRecord `json:"clauses"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if len(payload.Clauses) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No clauses provided for compliance check"})
		return
	}

	report := triage.CheckCompliance(payload.Clauses)
	writeJSON(w, http.StatusOK, map[string]any{"compliance": report})
}

func (s *Server) handleFullAnalysis(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	result := s.pipeline.FullAnalysis(r.Context(), filename, content)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No text provided for TTS"})
		return
	}

	text := payload.Text
	if len(text) > speakMaxChars {
		text = text[:speakMaxChars]
	}

	audio, err := s.synthesizer.Synthesize(r.Context(), text)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, tts.ErrMissingAPIKey) {
			status = http.StatusInternalServerError
		}
		s.logger.Error("speech synthesis failed", "error", err)
		writeJSON(w, status, map[string]string{"error": fmt.Sprintf("TTS generation failed: %v", err)})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="speech.mp3"`)
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

// readUpload pulls the multipart "file" field into memory.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart upload"})
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file upload"})
		return "", nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read upload"})
		return "", nil, false
	}

	return header.Filename, content, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
