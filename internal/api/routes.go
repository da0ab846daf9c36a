package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/podforge/podforge/internal/config"
	"github.com/podforge/podforge/internal/genai"
	"github.com/podforge/podforge/internal/ingest"
	"github.com/podforge/podforge/internal/schema"
	"github.com/podforge/podforge/internal/tts"
)

// Backend route segments under /api.
const (
	BackendElevenLabs = "elevenlabs"
	BackendOpenAI     = "openai"
	BackendWebSpeech  = "tts"
	BackendFestival   = "festival"
)

// NewRouter constructs the HTTP router with middleware and routes.
func NewRouter(cfg *config.Config, generator genai.Generator, aggregator *ingest.Aggregator, backends map[string]tts.Synthesizer, logger zerolog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(RecoverMiddleware(logger, cfg.Server.Environment))
	r.Use(CORSMiddleware)
	if cfg.Auth.APIKey != "" {
		r.Use(AuthMiddleware(cfg.Auth.APIKey))
	}

	h := NewHandler(cfg, generator, aggregator, backends, logger)

	r.Get("/v1/health", h.HandleHealth)

	r.Post("/api/genai/generate", h.HandleGenerate)

	r.Get("/api/elevenlabs/voices", h.HandleVoices(BackendElevenLabs))
	r.Post("/api/elevenlabs/generate/audio", h.HandleAudio(BackendElevenLabs))

	r.Get("/api/openai/voices", h.HandleVoices(BackendOpenAI))
	r.Post("/api/openai/generate/audio", h.HandleAudio(BackendOpenAI))

	r.Get("/api/tts/voices", h.HandleVoices(BackendWebSpeech))
	r.Post("/api/tts/generate/audio", h.HandleAudio(BackendWebSpeech))
	r.Post("/api/tts/generate/audio/server", h.HandleAudio(BackendFestival))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteJSON(w, http.StatusNotFound, schema.MessageResponse{
			Message: fmt.Sprintf("Not Found - %s", req.URL.Path),
		})
	})

	return r
}
