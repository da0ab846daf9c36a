package api

import (
	"encoding/json"
	"net/http"

	"github.com/podforge/podforge/internal/schema"
	"github.com/podforge/podforge/internal/tts"
)

// WriteError writes a standard error payload.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, schema.ErrorResponse{Error: message})
}

// WriteErrorDetails writes an error payload with diagnostic detail.
func WriteErrorDetails(w http.ResponseWriter, status int, message, details string) {
	WriteJSON(w, status, schema.ErrorResponse{Error: message, Details: details})
}

// WriteJSON writes the data structure as JSON.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteAudio writes binary audio data with the backend's content type.
func WriteAudio(w http.ResponseWriter, mime string, data []byte) {
	if mime == "" {
		mime = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// WriteVoices writes a backend's voice catalog envelope.
func WriteVoices(w http.ResponseWriter, voices []tts.Voice) {
	WriteJSON(w, http.StatusOK, struct {
		Message string      `json:"message"`
		Voices  []tts.Voice `json:"voices"`
	}{
		Message: "Voices fetched successfully",
		Voices:  voices,
	})
}
