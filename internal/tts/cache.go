package tts

import (
	"context"
	"sync"
)

type cacheKey struct {
	voiceID string
	text    string
}

// cachingSynthesizer memoizes byte-producing backends per process so an
// identical (text, voiceId) pair is not re-synthesized within a session.
// The cache is bounded: once maxEntries is reached it is reset wholesale
// rather than growing without limit.
type cachingSynthesizer struct {
	inner      Synthesizer
	maxEntries int

	mu      sync.Mutex
	entries map[cacheKey]*Audio
}

// WithCache wraps a byte-producing backend with an in-memory result cache.
// maxEntries <= 0 disables caching. Results carrying a Directive instead of
// bytes are never stored.
func WithCache(inner Synthesizer, maxEntries int) Synthesizer {
	if maxEntries <= 0 {
		return inner
	}
	return &cachingSynthesizer{
		inner:      inner,
		maxEntries: maxEntries,
		entries:    make(map[cacheKey]*Audio),
	}
}

func (c *cachingSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	key := cacheKey{voiceID: voiceID, text: text}

	c.mu.Lock()
	if audio, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return audio, nil
	}
	c.mu.Unlock()

	audio, err := c.inner.Synthesize(ctx, text, voiceID)
	if err != nil {
		return nil, err
	}

	if audio.Data != nil {
		c.mu.Lock()
		if len(c.entries) >= c.maxEntries {
			c.entries = make(map[cacheKey]*Audio)
		}
		c.entries[key] = audio
		c.mu.Unlock()
	}

	return audio, nil
}

func (c *cachingSynthesizer) Voices(ctx context.Context) ([]Voice, error) {
	return c.inner.Voices(ctx)
}
