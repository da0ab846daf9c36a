//go:build integration
// +build integration

// Integration tests require a running podforge server with a configured
// generative-text provider key.
// Run with: go test -tags=integration ./tests/integration/...
//
// Environment variables:
//   PODFORGE_SERVER_URL - server URL (default: http://localhost:3000)

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podforge/podforge/internal/schema"
)

var (
	serverURL  string
	httpClient *http.Client
)

func TestMain(m *testing.M) {
	serverURL = os.Getenv("PODFORGE_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:3000"
	}

	httpClient = &http.Client{
		Timeout: 300 * time.Second,
	}

	if !waitForServer(serverURL, 30*time.Second) {
		fmt.Fprintf(os.Stderr, "Server at %s not ready\n", serverURL)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func waitForServer(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/v1/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(1 * time.Second)
	}
	return false
}

func generateForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

// =============================================================================
// Health Endpoint Tests
// =============================================================================

func TestHealthGet(t *testing.T) {
	resp, err := httpClient.Get(serverURL + "/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	err = json.NewDecoder(resp.Body).Decode(&health)
	require.NoError(t, err)

	assert.Equal(t, "ok", health["status"])
}

// =============================================================================
// Script Generation Tests
// =============================================================================

func TestGeneratePromptOnly(t *testing.T) {
	body, contentType := generateForm(t, map[string]string{
		"prompt": "A two minute episode about the history of radio.",
	})

	resp, err := httpClient.Post(serverURL+"/api/genai/generate", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result schema.GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Data)
	assert.Zero(t, result.FilesProcessed)
	assert.Zero(t, result.URLsProcessed)
	assert.Equal(t, "Podcast script generated from your prompt", result.Message)

	t.Logf("Generated %d characters of script", len(result.Data))
}

func TestGenerateWithFile(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("prompt", "Summarize the attached notes."))
	part, err := writer.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Radio broadcasting began in the early 1920s."))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := httpClient.Post(serverURL+"/api/genai/generate", writer.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result schema.GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.FilesProcessed)
	assert.Empty(t, result.Errors)
}

func TestGenerateWithUnreachableURL(t *testing.T) {
	body, contentType := generateForm(t, map[string]string{
		"prompt": "An episode about nothing in particular.",
		"urls":   "https://definitely-not-a-real-host.invalid",
	})

	resp, err := httpClient.Post(serverURL+"/api/genai/generate", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Source failure is reported, not fatal.
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result schema.GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.True(t, result.Success)
	assert.Zero(t, result.URLsProcessed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to process URL")
}

func TestGenerateMissingPrompt(t *testing.T) {
	body, contentType := generateForm(t, map[string]string{})

	resp, err := httpClient.Post(serverURL+"/api/genai/generate", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp map[string]string
	json.NewDecoder(resp.Body).Decode(&errResp)
	assert.Equal(t, "Prompt is required", errResp["error"])
}

// =============================================================================
// TTS Endpoint Tests
// =============================================================================

func TestWebSpeechDirective(t *testing.T) {
	reqBody := schema.AudioRequest{
		Text:  "Welcome to the show.",
		Voice: "samantha",
		Rate:  1.2,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := httpClient.Post(serverURL+"/api/tts/generate/audio", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Success     bool `json:"success"`
		AudioConfig struct {
			Text            string  `json:"text"`
			Voice           string  `json:"voice"`
			Rate            float64 `json:"rate"`
			SynthesisMethod string  `json:"synthesisMethod"`
		} `json:"audioConfig"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.True(t, result.Success)
	assert.Equal(t, "Welcome to the show.", result.AudioConfig.Text)
	assert.Equal(t, 1.2, result.AudioConfig.Rate)
	assert.Equal(t, "webSpeechAPI", result.AudioConfig.SynthesisMethod)
}

func TestWebSpeechVoices(t *testing.T) {
	resp, err := httpClient.Get(serverURL + "/api/tts/voices")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Message string `json:"message"`
		Voices  []struct {
			VoiceID string `json:"voiceId"`
			Name    string `json:"name"`
		} `json:"voices"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, "Voices fetched successfully", result.Message)
	assert.NotEmpty(t, result.Voices)
}

func TestServerSideTTS(t *testing.T) {
	reqBody := schema.AudioRequest{Text: "Hello from the server engine."}
	body, _ := json.Marshal(reqBody)

	resp, err := httpClient.Post(serverURL+"/api/tts/generate/audio/server", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusInternalServerError {
		t.Skip("server-side synthesis engine not installed")
	}

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/wav", resp.Header.Get("Content-Type"))

	audio, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, audio)

	t.Logf("Generated %d bytes of audio", len(audio))
}

func TestTTSMissingText(t *testing.T) {
	resp, err := httpClient.Post(serverURL+"/api/tts/generate/audio", "application/json", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTTSUnsupportedContentType(t *testing.T) {
	resp, err := httpClient.Post(serverURL+"/api/tts/generate/audio", "text/plain", bytes.NewReader([]byte("Hello world")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

// =============================================================================
// Provider Backend Tests (require API keys on the server)
// =============================================================================

func TestElevenLabsAudio(t *testing.T) {
	reqBody := schema.AudioRequest{
		Text:    "Short provider synthesis test.",
		VoiceID: os.Getenv("PODFORGE_TEST_VOICE_ID"),
	}
	if reqBody.VoiceID == "" {
		t.Skip("PODFORGE_TEST_VOICE_ID not set")
	}
	body, _ := json.Marshal(reqBody)

	resp, err := httpClient.Post(serverURL+"/api/elevenlabs/generate/audio", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		t.Skip("elevenlabs backend not configured")
	}

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
}

// =============================================================================
// Routing Tests
// =============================================================================

func TestNotFoundShape(t *testing.T) {
	resp, err := httpClient.Get(serverURL + "/no/such/route")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var result map[string]string
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Not Found - /no/such/route", result["message"])
}
