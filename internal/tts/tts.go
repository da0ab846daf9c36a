// Package tts converts finished scripts to audible output through
// interchangeable backend strategies.
package tts

import (
	"context"
	"errors"
	"fmt"
)

// Voice identifies a synthetic speaking voice within one backend's
// namespace. Distinct backends own disjoint voiceId namespaces.
type Voice struct {
	VoiceID     string `json:"voiceId"`
	Name        string `json:"name"`
	Lang        string `json:"lang,omitempty"`
	Description string `json:"description,omitempty"`
}

// Audio is a backend-produced artifact. Provider and server-side backends
// fill Data and MIME; the on-device backend fills Directive instead, since
// synthesis happens on the caller's machine and yields no retrievable bytes.
type Audio struct {
	Data      []byte
	MIME      string
	Directive *Directive
}

// Synthesizer is the capability contract shared by every backend.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (*Audio, error)
	Voices(ctx context.Context) ([]Voice, error)
}

// SynthesisError indicates a backend failed to produce audio. It is fatal
// to the audio request only and never affects script generation.
type SynthesisError struct {
	StatusCode int
	Message    string
}

func (e *SynthesisError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("synthesis failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("synthesis failed: %s", e.Message)
}

// IsSynthesisError checks whether an error is a *SynthesisError.
func IsSynthesisError(err error) (*SynthesisError, bool) {
	var se *SynthesisError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
