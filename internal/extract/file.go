package extract

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// allowedExtensions is the set of file formats the extractor understands.
// Intake validation rejects anything else before a file is ever stored.
var allowedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
	".md":  true,
}

// AllowedExtension reports whether ext (including the leading dot) is extractable.
func AllowedExtension(ext string) bool {
	return allowedExtensions[strings.ToLower(ext)]
}

// FileExtractor produces UTF-8 text from stored uploads.
type FileExtractor struct{}

// NewFileExtractor creates a file extractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Extract reads the stored file and returns its plain text. The backing file
// is deleted before returning, whether or not extraction succeeded.
func (e *FileExtractor) Extract(ctx context.Context, src FileSource) (string, error) {
	defer os.Remove(src.Path)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch strings.ToLower(src.Ext) {
	case ".pdf":
		text, err := extractPDF(src.Path)
		if err != nil {
			return "", &ExtractError{Source: src.OriginalName, Err: err}
		}
		return text, nil
	case ".txt", ".md":
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", &ExtractError{Source: src.OriginalName, Err: err}
		}
		return string(data), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// extractPDF recovers body text only; layout and formatting are discarded.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	body, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return "", err
	}

	return buf.String(), nil
}
