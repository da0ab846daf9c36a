// Package ingest fans out over request sources and builds the prompt corpus.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/podforge/podforge/internal/extract"
)

// URLExtractor extracts readable text from a web URL.
type URLExtractor interface {
	Extract(ctx context.Context, src extract.URLSource) (string, error)
}

// FileExtractor extracts plain text from a stored upload.
type FileExtractor interface {
	Extract(ctx context.Context, src extract.FileSource) (string, error)
}

// Digest is the outcome of processing every source in a request.
// Corpus holds the concatenated provenance-tagged text of all successful
// extractions; Errors holds one human-readable entry per failed source.
type Digest struct {
	Corpus         string
	FilesProcessed int
	URLsProcessed  int
	Errors         []string
}

// Aggregator drives the extractors over a request's sources.
type Aggregator struct {
	urls   URLExtractor
	files  FileExtractor
	logger zerolog.Logger
}

// New creates an aggregator over the given extractors.
func New(urls URLExtractor, files FileExtractor, logger zerolog.Logger) *Aggregator {
	return &Aggregator{urls: urls, files: files, logger: logger}
}

// SplitURLs expands comma or whitespace separated multi-url strings into a
// flat list, dropping empty entries.
func SplitURLs(fields []string) []string {
	var urls []string
	for _, field := range fields {
		for _, part := range strings.FieldsFunc(field, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		}) {
			if part != "" {
				urls = append(urls, part)
			}
		}
	}
	return urls
}

// Collect extracts every source independently; one source failing never
// aborts the others. Corpus block order is deterministic: URL blocks first,
// then file blocks, each in submission order. Zero successes yields an empty
// corpus, which is not an error.
func (a *Aggregator) Collect(ctx context.Context, urls []string, files []extract.FileSource) Digest {
	var d Digest
	var blocks []string

	for _, raw := range urls {
		text, err := a.urls.Extract(ctx, extract.URLSource{Raw: raw})
		if err != nil {
			a.logger.Warn().Str("url", raw).Err(err).Msg("URL extraction failed")
			d.Errors = append(d.Errors, fmt.Sprintf("Failed to process URL %s: %v", raw, err))
			continue
		}
		blocks = append(blocks, corpusBlock(raw, text))
		d.URLsProcessed++
	}

	for _, file := range files {
		text, err := a.files.Extract(ctx, file)
		if err != nil {
			a.logger.Warn().Str("file", file.OriginalName).Err(err).Msg("file extraction failed")
			d.Errors = append(d.Errors, fmt.Sprintf("Failed to process file %s: %v", file.OriginalName, err))
			continue
		}
		blocks = append(blocks, corpusBlock(file.OriginalName, text))
		d.FilesProcessed++
	}

	d.Corpus = strings.Join(blocks, "\n")
	return d
}

func corpusBlock(id, text string) string {
	return fmt.Sprintf("\n=== Content from %s ===\n%s\n=== End of %s ===\n", id, text, id)
}
