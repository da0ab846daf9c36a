package genai

import (
	"fmt"

	"github.com/podforge/podforge/internal/ingest"
)

// Outcome packages a generated script with per-source processing results.
// It is the terminal artifact returned to the caller.
type Outcome struct {
	Script         string
	FilesProcessed int
	URLsProcessed  int
	Errors         []string
	Message        string
}

// Assemble builds the Outcome for a script and its ingestion digest. The
// message enumerates which source kinds contributed; failed sources are
// reported through Errors without affecting overall success.
func Assemble(script string, d ingest.Digest) Outcome {
	return Outcome{
		Script:         script,
		FilesProcessed: d.FilesProcessed,
		URLsProcessed:  d.URLsProcessed,
		Errors:         d.Errors,
		Message:        outcomeMessage(d),
	}
}

func outcomeMessage(d ingest.Digest) string {
	switch {
	case d.FilesProcessed > 0 && d.URLsProcessed > 0:
		return fmt.Sprintf("Podcast script generated from your prompt, %d uploaded file(s) and %d linked page(s)", d.FilesProcessed, d.URLsProcessed)
	case d.FilesProcessed > 0:
		return fmt.Sprintf("Podcast script generated from your prompt and %d uploaded file(s)", d.FilesProcessed)
	case d.URLsProcessed > 0:
		return fmt.Sprintf("Podcast script generated from your prompt and %d linked page(s)", d.URLsProcessed)
	default:
		return "Podcast script generated from your prompt"
	}
}
