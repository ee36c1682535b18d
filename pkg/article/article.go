// Package article fetches web pages and extracts their readable Arabic text.
package article

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

// MaxBodySize is the largest page Fetch accepts.
const MaxBodySize = 10 * 1024 * 1024

var ErrTooLarge = errors.New("article: response body too large")

// Article is the readable part of a page.
type Article struct {
	URL      string
	Title    string
	Byline   string
	SiteName string
	Text     string
}

// Fetcher downloads pages. The zero value uses a 30 second client.
type Fetcher struct {
	Client  *http.Client
	MaxSize int64
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (f *Fetcher) maxSize() int64 {
	if f.MaxSize > 0 {
		return f.MaxSize
	}
	return MaxBodySize
}

// Fetch downloads the page at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Some news sites reject clients without browser headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ar,en-US;q=0.8,en;q=0.7")

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	limit := f.maxSize()
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: content-length %d exceeds %d bytes", ErrTooLarge, resp.ContentLength, limit)
	}
	// one extra byte tells a body of exactly limit bytes from a longer one
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, limit)
	}
	return body, nil
}

// Extract runs readability over an HTML page.
func Extract(body []byte, pageURL string) (*Article, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("bad page url %q: %w", pageURL, err)
	}
	a, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}
	return &Article{
		URL:      pageURL,
		Title:    strings.TrimSpace(a.Title),
		Byline:   strings.TrimSpace(a.Byline),
		SiteName: strings.TrimSpace(a.SiteName),
		Text:     a.TextContent,
	}, nil
}

// FetchArticle fetches and extracts in one step.
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (*Article, error) {
	body, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return Extract(body, rawURL)
}
