package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/podforge/podforge/internal/config"
	"github.com/podforge/podforge/internal/genai"
	"github.com/podforge/podforge/internal/ingest"
	"github.com/podforge/podforge/internal/prompt"
	"github.com/podforge/podforge/internal/schema"
	"github.com/podforge/podforge/internal/tts"
)

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	cfg        *config.Config
	generator  genai.Generator
	aggregator *ingest.Aggregator
	backends   map[string]tts.Synthesizer
	logger     zerolog.Logger
}

// NewHandler constructs the handler set. backends is keyed by the route
// segment each TTS backend is mounted under.
func NewHandler(cfg *config.Config, generator genai.Generator, aggregator *ingest.Aggregator, backends map[string]tts.Synthesizer, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:        cfg,
		generator:  generator,
		aggregator: aggregator,
		backends:   backends,
		logger:     logger,
	}
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, schema.HealthResponse{Status: "ok"})
}

// HandleGenerate runs the full ingestion and generation pipeline: intake
// validation, per-source extraction, prompt composition, the provider call,
// and outcome assembly. Source failures are collected, not fatal; provider
// failures abort with a 500.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := ParseGenerateRequest(r, &h.cfg.Uploads)
	if err != nil {
		if httpErr, ok := IsHTTPError(err); ok {
			WriteError(w, httpErr.Status, httpErr.Message)
			return
		}
		WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	urls := ingest.SplitURLs(req.URLFields)
	digest := h.aggregator.Collect(r.Context(), urls, req.Files)

	composed := prompt.Compose(req.Prompt, req.TargetMinutes, digest.Corpus)

	script, err := h.generator.GenerateScript(r.Context(), composed)
	if err != nil {
		h.logger.Error().Err(err).Msg("script generation failed")
		details := err.Error()
		if ge, ok := genai.IsGenerationError(err); ok {
			details = ge.Details
		}
		WriteErrorDetails(w, http.StatusInternalServerError, "Failed to generate podcast script", details)
		return
	}

	outcome := genai.Assemble(script, digest)
	WriteJSON(w, http.StatusOK, schema.GenerateResponse{
		Success:        true,
		Data:           outcome.Script,
		FilesProcessed: outcome.FilesProcessed,
		URLsProcessed:  outcome.URLsProcessed,
		Errors:         outcome.Errors,
		Message:        outcome.Message,
	})
}

// HandleAudio synthesizes audio through the named backend. Byte-producing
// backends answer with raw audio; the on-device backend answers with a
// synthesis directive for the caller's speech facility.
func (h *Handler) HandleAudio(backend string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		synth, ok := h.backends[backend]
		if !ok {
			WriteError(w, http.StatusServiceUnavailable, "TTS backend not configured")
			return
		}

		req, err := ParseAudioRequest(r)
		if err != nil {
			if httpErr, ok := IsHTTPError(err); ok {
				WriteError(w, httpErr.Status, httpErr.Message)
				return
			}
			WriteError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		audio, err := synth.Synthesize(r.Context(), req.Text, req.ResolvedVoice())
		if err != nil {
			h.logger.Error().Err(err).Str("backend", backend).Msg("synthesis failed")
			WriteError(w, http.StatusInternalServerError, "Failed to generate audio")
			return
		}

		if audio.Directive != nil {
			directive := *audio.Directive
			directive.Rate = req.Rate
			directive.Pitch = req.Pitch
			WriteJSON(w, http.StatusOK, struct {
				Success     bool           `json:"success"`
				AudioConfig *tts.Directive `json:"audioConfig"`
			}{Success: true, AudioConfig: &directive})
			return
		}

		WriteAudio(w, audio.MIME, audio.Data)
	}
}

// HandleVoices lists the named backend's voice catalog.
func (h *Handler) HandleVoices(backend string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		synth, ok := h.backends[backend]
		if !ok {
			WriteError(w, http.StatusServiceUnavailable, "TTS backend not configured")
			return
		}

		voices, err := synth.Voices(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Str("backend", backend).Msg("voice catalog fetch failed")
			WriteError(w, http.StatusInternalServerError, "Failed to fetch voices")
			return
		}

		WriteVoices(w, voices)
	}
}
