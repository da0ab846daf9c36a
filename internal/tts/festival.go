package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// festivalVoices is the catalog the server-side engine advertises; voiceId
// selection is best-effort since the engine picks its own installed voice.
var festivalVoices = []Voice{
	{VoiceID: "default", Name: "Default", Lang: "en-US", Description: "Engine default voice"},
}

// Festival shells out to a local synthesis engine and streams the produced
// WAV back. The temporary audio file is deleted unconditionally.
type Festival struct {
	bin     string
	tempDir string
}

// NewFestival creates a server-side synthesis backend invoking the given
// binary (typically "festival").
func NewFestival(bin string) *Festival {
	if bin == "" {
		bin = "festival"
	}
	return &Festival{bin: bin, tempDir: os.TempDir()}
}

// Synthesize pipes text through the engine and returns the WAV bytes.
func (f *Festival) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SynthesisError{Message: "text is required"}
	}

	tempFile := filepath.Join(f.tempDir, fmt.Sprintf("tts_%s.wav", uuid.NewString()))
	defer os.Remove(tempFile)

	out, err := os.Create(tempFile)
	if err != nil {
		return nil, &SynthesisError{Message: fmt.Sprintf("create temp audio file: %v", err)}
	}

	cmd := exec.CommandContext(ctx, f.bin, "--tts", "--pipe")
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = out

	runErr := cmd.Run()
	closeErr := out.Close()
	if runErr != nil {
		return nil, &SynthesisError{Message: fmt.Sprintf("synthesis engine failed: %v", runErr)}
	}
	if closeErr != nil {
		return nil, &SynthesisError{Message: closeErr.Error()}
	}

	data, err := os.ReadFile(tempFile)
	if err != nil {
		return nil, &SynthesisError{Message: err.Error()}
	}

	return &Audio{Data: data, MIME: "audio/wav"}, nil
}

// Voices returns the static engine catalog.
func (f *Festival) Voices(ctx context.Context) ([]Voice, error) {
	voices := make([]Voice, len(festivalVoices))
	copy(voices, festivalVoices)
	return voices, nil
}
