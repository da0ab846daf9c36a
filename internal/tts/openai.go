package tts

import (
	"context"
	"errors"
	"io"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIDefaultTTSModel = "tts-1"

// openAIVoices is the provider's fixed speech voice set.
var openAIVoices = []Voice{
	{VoiceID: "alloy", Name: "Alloy", Description: "Neutral, balanced voice"},
	{VoiceID: "echo", Name: "Echo", Description: "Male voice"},
	{VoiceID: "fable", Name: "Fable", Description: "British accent"},
	{VoiceID: "onyx", Name: "Onyx", Description: "Deep male voice"},
	{VoiceID: "nova", Name: "Nova", Description: "Female voice"},
	{VoiceID: "shimmer", Name: "Shimmer", Description: "Soft female voice"},
}

// OpenAI is the OpenAI speech provider backend. It returns raw MP3 bytes.
type OpenAI struct {
	sdk   openai.Client
	model string
}

// OpenAIOption configures the OpenAI backend.
type OpenAIOption func(*OpenAI, *[]option.RequestOption)

// WithOpenAIBaseURL sets the API base URL.
func WithOpenAIBaseURL(baseURL string) OpenAIOption {
	return func(_ *OpenAI, opts *[]option.RequestOption) {
		if baseURL != "" {
			*opts = append(*opts, option.WithBaseURL(baseURL))
		}
	}
}

// WithOpenAIModel sets the speech model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(o *OpenAI, _ *[]option.RequestOption) {
		if model != "" {
			o.model = model
		}
	}
}

// NewOpenAI creates an OpenAI speech backend. The apiKey is required.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}
	o := &OpenAI{model: openAIDefaultTTSModel}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	for _, opt := range opts {
		opt(o, &reqOpts)
	}
	o.sdk = openai.NewClient(reqOpts...)
	return o, nil
}

// Synthesize converts text to MP3 audio using the Audio Speech API.
func (o *OpenAI) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SynthesisError{Message: "text is required"}
	}
	if voiceID == "" {
		voiceID = "alloy"
	}

	req := openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(o.model),
		Voice:          openai.AudioSpeechNewParamsVoice(voiceID),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	resp, err := o.sdk.Audio.Speech.New(ctx, req)
	if err != nil {
		return nil, &SynthesisError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{Message: err.Error()}
	}

	return &Audio{Data: data, MIME: "audio/mpeg"}, nil
}

// Voices returns the static provider catalog.
func (o *OpenAI) Voices(ctx context.Context) ([]Voice, error) {
	voices := make([]Voice, len(openAIVoices))
	copy(voices, openAIVoices)
	return voices, nil
}
