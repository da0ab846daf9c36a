package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podforge/podforge/internal/extract"
)

type mockURLExtractor struct {
	extractFunc func(ctx context.Context, src extract.URLSource) (string, error)
}

func (m *mockURLExtractor) Extract(ctx context.Context, src extract.URLSource) (string, error) {
	return m.extractFunc(ctx, src)
}

type mockFileExtractor struct {
	extractFunc func(ctx context.Context, src extract.FileSource) (string, error)
}

func (m *mockFileExtractor) Extract(ctx context.Context, src extract.FileSource) (string, error) {
	return m.extractFunc(ctx, src)
}

func newTestAggregator(urls URLExtractor, files FileExtractor) *Aggregator {
	return New(urls, files, zerolog.Nop())
}

func TestSplitURLs(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   []string
	}{
		{name: "empty", fields: nil, want: nil},
		{name: "single", fields: []string{"https://a.com"}, want: []string{"https://a.com"}},
		{name: "comma separated", fields: []string{"a.com,b.com"}, want: []string{"a.com", "b.com"}},
		{name: "whitespace separated", fields: []string{"a.com b.com\nc.com"}, want: []string{"a.com", "b.com", "c.com"}},
		{name: "multiple fields", fields: []string{"a.com", "b.com, c.com"}, want: []string{"a.com", "b.com", "c.com"}},
		{name: "empty entries dropped", fields: []string{",,a.com,,", "  "}, want: []string{"a.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitURLs(tt.fields))
		})
	}
}

func TestCollect_URLBlocksBeforeFileBlocks(t *testing.T) {
	urls := &mockURLExtractor{extractFunc: func(ctx context.Context, src extract.URLSource) (string, error) {
		return "text from " + src.Raw, nil
	}}
	files := &mockFileExtractor{extractFunc: func(ctx context.Context, src extract.FileSource) (string, error) {
		return "text from " + src.OriginalName, nil
	}}

	d := newTestAggregator(urls, files).Collect(context.Background(),
		[]string{"https://a.com", "https://b.com"},
		[]extract.FileSource{{OriginalName: "one.txt"}, {OriginalName: "two.md"}},
	)

	assert.Equal(t, 2, d.URLsProcessed)
	assert.Equal(t, 2, d.FilesProcessed)
	assert.Empty(t, d.Errors)

	// URL blocks first, then files, each in submission order.
	order := []string{
		"=== Content from https://a.com ===",
		"=== Content from https://b.com ===",
		"=== Content from one.txt ===",
		"=== Content from two.md ===",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(d.Corpus, marker)
		require.NotEqual(t, -1, idx, "missing block %q", marker)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestCollect_BlockFormat(t *testing.T) {
	files := &mockFileExtractor{extractFunc: func(ctx context.Context, src extract.FileSource) (string, error) {
		return "file body", nil
	}}

	d := newTestAggregator(nil, files).Collect(context.Background(), nil,
		[]extract.FileSource{{OriginalName: "doc.txt"}})

	assert.Equal(t, "\n=== Content from doc.txt ===\nfile body\n=== End of doc.txt ===\n", d.Corpus)
}

func TestCollect_FailureIsolation(t *testing.T) {
	urls := &mockURLExtractor{extractFunc: func(ctx context.Context, src extract.URLSource) (string, error) {
		if src.Raw == "https://bad.com" {
			return "", errors.New("fetch timeout after 10s")
		}
		return "good text", nil
	}}
	files := &mockFileExtractor{extractFunc: func(ctx context.Context, src extract.FileSource) (string, error) {
		return "", fmt.Errorf("unsupported file format")
	}}

	d := newTestAggregator(urls, files).Collect(context.Background(),
		[]string{"https://bad.com", "https://good.com"},
		[]extract.FileSource{{OriginalName: "broken.pdf"}},
	)

	assert.Equal(t, 1, d.URLsProcessed)
	assert.Equal(t, 0, d.FilesProcessed)
	require.Len(t, d.Errors, 2)
	assert.Equal(t, "Failed to process URL https://bad.com: fetch timeout after 10s", d.Errors[0])
	assert.Equal(t, "Failed to process file broken.pdf: unsupported file format", d.Errors[1])
	assert.Contains(t, d.Corpus, "good text")
	assert.NotContains(t, d.Corpus, "bad.com")
}

func TestCollect_AllSourcesFail(t *testing.T) {
	urls := &mockURLExtractor{extractFunc: func(ctx context.Context, src extract.URLSource) (string, error) {
		return "", errors.New("unreachable")
	}}

	d := newTestAggregator(urls, nil).Collect(context.Background(), []string{"https://a.com"}, nil)

	assert.Empty(t, d.Corpus)
	assert.Equal(t, 0, d.URLsProcessed)
	assert.Len(t, d.Errors, 1)
}

func TestCollect_NoSources(t *testing.T) {
	d := newTestAggregator(nil, nil).Collect(context.Background(), nil, nil)

	assert.Empty(t, d.Corpus)
	assert.Zero(t, d.FilesProcessed)
	assert.Zero(t, d.URLsProcessed)
	assert.Empty(t, d.Errors)
}
