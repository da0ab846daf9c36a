package genai

import (
	"context"
	"strings"
	"time"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/podforge/podforge/internal/config"
)

// Gemini generates scripts through the Google GenAI API.
type Gemini struct {
	client  *gemini.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(ctx context.Context, cfg *config.GenAIConfig) (*Gemini, error) {
	client, err := gemini.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client, model: cfg.Model, timeout: cfg.Timeout}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// GenerateScript sends the prompt and returns the generated script text.
func (g *Gemini) GenerateScript(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, gemini.Text(prompt))
	if err != nil {
		return "", &GenerationError{Details: err.Error()}
	}

	return responseText(resp), nil
}

func responseText(resp *gemini.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return FallbackScript
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(gemini.Text); ok {
			b.WriteString(string(text))
		}
	}

	if strings.TrimSpace(b.String()) == "" {
		return FallbackScript
	}
	return b.String()
}
