package tts

import (
	"context"
	"strings"
	"sync"
)

// Directive instructs the caller's local speech-synthesis facility. Nothing
// is synthesized server-side; the artifact is an ephemeral playback session
// on the device, never cached bytes.
type Directive struct {
	Text            string  `json:"text"`
	Voice           string  `json:"voice"`
	Rate            float64 `json:"rate"`
	Pitch           float64 `json:"pitch"`
	SynthesisMethod string  `json:"synthesisMethod"`
}

// webSpeechVoices are voice hints that resolve against whatever the device
// actually offers; actual availability depends on the client platform.
var webSpeechVoices = []Voice{
	{VoiceID: "default", Name: "Default Voice", Lang: "en-US", Description: "System default voice"},
	{VoiceID: "female", Name: "Female Voice", Lang: "en-US", Description: "Prefer female voice"},
	{VoiceID: "male", Name: "Male Voice", Lang: "en-US", Description: "Prefer male voice"},
	{VoiceID: "british", Name: "British English", Lang: "en-GB", Description: "British accent"},
	{VoiceID: "australian", Name: "Australian English", Lang: "en-AU", Description: "Australian accent"},
	{VoiceID: "samantha", Name: "Samantha", Lang: "en-US", Description: "Natural female voice (iOS)"},
	{VoiceID: "alex", Name: "Alex", Lang: "en-US", Description: "Natural male voice (iOS/macOS)"},
	{VoiceID: "google", Name: "Google Voice", Lang: "en-US", Description: "Google TTS voice"},
	{VoiceID: "zira", Name: "Microsoft Zira", Lang: "en-US", Description: "Microsoft female voice"},
	{VoiceID: "david", Name: "Microsoft David", Lang: "en-US", Description: "Microsoft male voice"},
	{VoiceID: "spanish", Name: "Spanish", Lang: "es-ES", Description: "Spanish voice"},
	{VoiceID: "french", Name: "French", Lang: "fr-FR", Description: "French voice"},
	{VoiceID: "german", Name: "German", Lang: "de-DE", Description: "German voice"},
}

// heuristicKeywords maps gender/accent voice ids to name keywords used in
// the last matching step before falling back to the first available voice.
var heuristicKeywords = map[string][]string{
	"female":     {"female", "samantha", "zira", "victoria", "karen"},
	"male":       {"male", "alex", "david", "daniel", "fred"},
	"british":    {"uk", "british", "daniel", "kate"},
	"australian": {"au", "australian", "karen", "lee"},
}

// WebSpeech is the on-device backend. Synthesize yields a Directive rather
// than bytes; results must never be cached.
type WebSpeech struct{}

// NewWebSpeech creates the on-device backend.
func NewWebSpeech() *WebSpeech {
	return &WebSpeech{}
}

// Synthesize returns the synthesis directive for the caller's device.
func (w *WebSpeech) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SynthesisError{Message: "text is required"}
	}
	if voiceID == "" {
		voiceID = "default"
	}
	return &Audio{Directive: &Directive{
		Text:            text,
		Voice:           voiceID,
		Rate:            1.0,
		Pitch:           1.0,
		SynthesisMethod: "webSpeechAPI",
	}}, nil
}

// Voices returns the static voice-hint catalog.
func (w *WebSpeech) Voices(ctx context.Context) ([]Voice, error) {
	voices := make([]Voice, len(webSpeechVoices))
	copy(voices, webSpeechVoices)
	return voices, nil
}

// LocalVoice describes one voice reported by a device's speech facility.
type LocalVoice struct {
	Name string
	Lang string
}

// ResolveVoice maps a requested voiceId onto a concrete local voice using a
// fallback chain: exact name, substring of name, substring of language tag,
// gender/accent keyword heuristic, then the first available voice.
func ResolveVoice(available []LocalVoice, voiceID string) (LocalVoice, bool) {
	if len(available) == 0 {
		return LocalVoice{}, false
	}

	want := strings.ToLower(strings.TrimSpace(voiceID))
	if want == "" || want == "default" {
		return available[0], true
	}

	for _, v := range available {
		if strings.ToLower(v.Name) == want {
			return v, true
		}
	}
	for _, v := range available {
		if strings.Contains(strings.ToLower(v.Name), want) {
			return v, true
		}
	}
	for _, v := range available {
		if strings.Contains(strings.ToLower(v.Lang), want) {
			return v, true
		}
	}
	for _, keyword := range heuristicKeywords[want] {
		for _, v := range available {
			if strings.Contains(strings.ToLower(v.Name), keyword) {
				return v, true
			}
		}
	}

	return available[0], true
}

// Speaker is a device-local speech facility. Speak blocks until the
// utterance finishes or ctx is cancelled.
type Speaker interface {
	Speak(ctx context.Context, text string, voice LocalVoice, rate, pitch float64) error
	Voices() []LocalVoice
}

// SessionState tracks on-device playback.
type SessionState int

const (
	StateIdle SessionState = iota
	StateLoading
	StatePlaying
	StateError
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Session owns the playback state for one on-device utterance. Transitions:
// idle -> loading -> playing -> idle, or -> error on failure. Stop cancels
// a pending or in-flight utterance and returns the session to idle.
type Session struct {
	speaker Speaker

	mu     sync.Mutex
	state  SessionState
	err    error
	cancel context.CancelFunc
}

// NewSession creates an idle playback session over the given speaker.
func NewSession(speaker Speaker) *Session {
	return &Session{speaker: speaker, state: StateIdle}
}

// State returns the current playback state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the failure that moved the session to StateError, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Speak resolves the voice and plays the utterance, blocking until it
// finishes, fails, or is stopped. Each call re-invokes synthesis; there is
// nothing to cache.
func (s *Session) Speak(ctx context.Context, text, voiceID string, rate, pitch float64) error {
	voice, ok := ResolveVoice(s.speaker.Voices(), voiceID)
	if !ok {
		err := &SynthesisError{Message: "no voices available on device"}
		s.setError(err)
		return err
	}

	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.state = StateLoading
	s.err = nil
	s.mu.Unlock()

	s.setState(StatePlaying)
	err := s.speaker.Speak(ctx, text, voice, rate, pitch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = nil
	if err != nil && ctx.Err() == nil {
		s.state = StateError
		s.err = err
		return err
	}
	s.state = StateIdle
	return nil
}

// Stop cancels playback before or during the utterance.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = StateIdle
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Session) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateError
	s.err = err
}
