package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI("")
	require.Error(t, err)
}

func TestOpenAI_Synthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/audio/speech", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tts-1", body["model"])
		assert.Equal(t, "nova", body["voice"])
		assert.Equal(t, "hello world", body["input"])
		assert.Equal(t, "mp3", body["response_format"])

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	o, err := NewOpenAI("test-key", WithOpenAIBaseURL(server.URL))
	require.NoError(t, err)

	audio, err := o.Synthesize(context.Background(), "hello world", "nova")

	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio.Data)
	assert.Equal(t, "audio/mpeg", audio.MIME)
}

func TestOpenAI_DefaultVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alloy", body["voice"])
		w.Write([]byte("mp3"))
	}))
	defer server.Close()

	o, err := NewOpenAI("test-key", WithOpenAIBaseURL(server.URL))
	require.NoError(t, err)

	_, err = o.Synthesize(context.Background(), "hello", "")
	require.NoError(t, err)
}

func TestOpenAI_EmptyText(t *testing.T) {
	o, err := NewOpenAI("test-key")
	require.NoError(t, err)

	_, err = o.Synthesize(context.Background(), "  ", "alloy")

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
}

func TestOpenAI_Voices(t *testing.T) {
	o, err := NewOpenAI("test-key")
	require.NoError(t, err)

	voices, err := o.Voices(context.Background())

	require.NoError(t, err)
	assert.Len(t, voices, 6)
	assert.Equal(t, "alloy", voices[0].VoiceID)
}
