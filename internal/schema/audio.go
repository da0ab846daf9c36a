package schema

import (
	"errors"
	"strings"
)

const (
	defaultRate  = 1.0
	defaultPitch = 1.0
)

// AudioRequest is the body for the TTS generation endpoints. Provider
// backends address voices by VoiceID; the on-device and server-side
// backends use the shorter Voice field. Either is accepted.
type AudioRequest struct {
	Text    string `json:"text" msgpack:"text"`
	VoiceID string `json:"voiceId" msgpack:"voiceId"`
	Voice   string `json:"voice" msgpack:"voice"`

	Rate  float64 `json:"rate" msgpack:"rate"`
	Pitch float64 `json:"pitch" msgpack:"pitch"`
}

// Validate applies defaults and checks the request.
func (r *AudioRequest) Validate() error {
	r.applyDefaults()

	if strings.TrimSpace(r.Text) == "" {
		return errors.New("text is required")
	}

	return nil
}

// ResolvedVoice returns whichever voice field the caller set.
func (r *AudioRequest) ResolvedVoice() string {
	if r.VoiceID != "" {
		return r.VoiceID
	}
	return r.Voice
}

func (r *AudioRequest) applyDefaults() {
	if r.Rate == 0 {
		r.Rate = defaultRate
	}
	if r.Pitch == 0 {
		r.Pitch = defaultPitch
	}
}
