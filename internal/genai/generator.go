// Package genai talks to the generative-text provider and assembles the
// caller-facing generation outcome.
package genai

import (
	"context"
	"errors"
	"fmt"
)

// FallbackScript is returned when the provider responds without any text.
// Downstream consumers always receive a defined script value.
const FallbackScript = "No script generated."

// Generator produces a podcast script from a composed prompt. A single
// blocking call with no retry and no streaming; provider errors abort the
// whole request.
type Generator interface {
	GenerateScript(ctx context.Context, prompt string) (string, error)
}

// GenerationError indicates the provider call failed. Unlike per-source
// extraction failures, this is fatal to the request.
type GenerationError struct {
	Details string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("script generation failed: %s", e.Details)
}

// IsGenerationError checks whether an error is a *GenerationError.
func IsGenerationError(err error) (*GenerationError, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
