package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	elevenLabsDefaultBaseURL      = "https://api.elevenlabs.io"
	elevenLabsDefaultOutputFormat = "mp3_44100_128"
	elevenLabsDefaultModelID      = "eleven_multilingual_v2"
)

// ElevenLabsOption configures the ElevenLabs backend.
type ElevenLabsOption func(*ElevenLabs)

// WithElevenLabsBaseURL sets the API base URL.
func WithElevenLabsBaseURL(baseURL string) ElevenLabsOption {
	return func(e *ElevenLabs) {
		if baseURL != "" {
			e.baseURL = baseURL
		}
	}
}

// WithElevenLabsHTTPClient sets the HTTP client used for requests.
func WithElevenLabsHTTPClient(client *http.Client) ElevenLabsOption {
	return func(e *ElevenLabs) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// ElevenLabs is the hosted provider-API backend. It returns raw MP3 bytes.
type ElevenLabs struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewElevenLabs creates an ElevenLabs backend. The apiKey is required.
func NewElevenLabs(apiKey string, opts ...ElevenLabsOption) (*ElevenLabs, error) {
	if apiKey == "" {
		return nil, errors.New("ELEVENLABS_API_KEY is required")
	}
	e := &ElevenLabs{
		apiKey:  apiKey,
		baseURL: elevenLabsDefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Synthesize converts text to MP3 audio using the given provider voice.
func (e *ElevenLabs) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	if strings.TrimSpace(voiceID) == "" {
		return nil, &SynthesisError{Message: "voiceId is required"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &SynthesisError{Message: "text is required"}
	}

	endpoint, err := url.Parse(strings.TrimRight(e.baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse elevenlabs base url: %w", err)
	}
	endpoint.Path = fmt.Sprintf("/v1/text-to-speech/%s", voiceID)
	query := endpoint.Query()
	query.Set("output_format", elevenLabsDefaultOutputFormat)
	endpoint.RawQuery = query.Encode()

	body := struct {
		Text    string `json:"text"`
		ModelID string `json:"model_id"`
	}{
		Text:    text,
		ModelID: elevenLabsDefaultModelID,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode elevenlabs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &buf)
	if err != nil {
		return nil, fmt.Errorf("build elevenlabs request: %w", err)
	}
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("accept", "audio/mpeg")
	req.Header.Set("content-type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &SynthesisError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(errBody))}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{Message: err.Error()}
	}

	return &Audio{Data: data, MIME: "audio/mpeg"}, nil
}

// Voices fetches the provider's voice catalog.
func (e *ElevenLabs) Voices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(e.baseURL, "/")+"/v1/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &SynthesisError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(errBody))}
	}

	var payload struct {
		Voices []struct {
			VoiceID     string            `json:"voice_id"`
			Name        string            `json:"name"`
			Description string            `json:"description"`
			Labels      map[string]string `json:"labels"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &SynthesisError{Message: err.Error()}
	}

	voices := make([]Voice, 0, len(payload.Voices))
	for _, v := range payload.Voices {
		voices = append(voices, Voice{
			VoiceID:     v.VoiceID,
			Name:        v.Name,
			Lang:        v.Labels["language"],
			Description: v.Description,
		})
	}
	return voices, nil
}
