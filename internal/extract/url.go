package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const truncationMarker = "\n\n[Content truncated]"

// contentSelectors ranks likely main-content containers. The first selector
// that yields a non-empty text block wins.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	".content",
	".main-content",
	".post-content",
	".article-content",
	"#content",
}

// URLExtractor fetches a web page and reduces it to readable text.
type URLExtractor struct {
	client  *http.Client
	timeout time.Duration
	maxLen  int
}

// NewURLExtractor creates a URL extractor with the given per-fetch timeout
// and maximum extracted content length in characters.
func NewURLExtractor(timeout time.Duration, maxLen int) *URLExtractor {
	return &URLExtractor{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout: timeout,
		maxLen:  maxLen,
	}
}

// NormalizeURL validates the syntactic shape of raw and returns the fetchable
// form, defaulting to https:// when no scheme is given. Validation happens
// before any network I/O.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t\n") {
		return "", ErrInvalidURL
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	host := u.Hostname()
	if host == "" || (!strings.Contains(host, ".") && host != "localhost") {
		return "", ErrInvalidURL
	}

	return u.String(), nil
}

// Extract fetches the page and returns "Title: <t>\n\nContent:\n<c>".
func (e *URLExtractor) Extract(ctx context.Context, src URLSource) (string, error) {
	normalized, err := NormalizeURL(src.Raw)
	if err != nil {
		return "", err
	}

	html, err := e.fetch(ctx, normalized)
	if err != nil {
		return "", err
	}

	title, content := parsePage(html)
	content = truncate(content, e.maxLen)

	return fmt.Sprintf("Title: %s\n\nContent:\n%s", title, content), nil
}

func (e *URLExtractor) fetch(ctx context.Context, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	setBrowserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s", ErrFetchTimeout, e.timeout)
		}
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &StatusError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ExtractError{Source: target, Err: err}
	}

	return string(body), nil
}

// setBrowserHeaders identifies as a desktop browser; some sites return 406
// or block requests with a bare Go user agent.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// parsePage strips non-content markup and selects the page title plus the
// largest likely main-content block.
func parsePage(html string) (title, content string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", collapseWhitespace(html)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
			title = strings.TrimSpace(og)
		}
	}

	doc.Find("script, style, nav, header, footer, aside, noscript, iframe").Remove()

	for _, sel := range contentSelectors {
		var best string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if t := collapseWhitespace(s.Text()); len(t) > len(best) {
				best = t
			}
		})
		if best != "" {
			return title, best
		}
	}

	if article, err := readability.FromReader(strings.NewReader(html), nil); err == nil {
		if t := collapseWhitespace(article.TextContent); t != "" {
			return title, t
		}
	}

	return title, collapseWhitespace(doc.Find("body").Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at maxLen characters, never splitting a multi-byte rune.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + truncationMarker
		}
		n++
	}
	return s
}
