package httpasset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
)

// Ensure Fetcher implements the interfaces.
var (
	_ driven.TimestampFetcher = (*Fetcher)(nil)
	_ driven.ContentFetcher   = (*Fetcher)(nil)
)

// DefaultMaxContentSize caps the size of a downloaded slide document.
const DefaultMaxContentSize = 32 << 20

// ErrNoLastModified indicates a response without a usable Last-Modified header.
var ErrNoLastModified = errors.New("httpasset: missing Last-Modified header")

// Fetcher reads slide timestamps and content from an HTTP server.
// Relative paths are resolved against the base URL.
type Fetcher struct {
	client   *http.Client
	base     *url.URL
	limiter  *RateLimiter
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithRateLimiter sets the request limiter.
func WithRateLimiter(l *RateLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithMaxContentSize sets the largest document FetchContent accepts.
func WithMaxContentSize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a fetcher. baseURL may be empty when all paths are absolute.
func NewFetcher(baseURL string, opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  NewRateLimiter(DefaultRequestsPerSecond, DefaultBurst),
		maxBytes: DefaultMaxContentSize,
	}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: base url: %v", domain.ErrInvalidInput, err)
		}
		f.base = u
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FetchTimestamp issues a HEAD request and parses Last-Modified.
func (f *Fetcher) FetchTimestamp(ctx context.Context, path string) (time.Time, error) {
	resp, err := f.do(ctx, http.MethodHead, path)
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()

	lm := resp.Header.Get("Last-Modified")
	if lm == "" {
		return time.Time{}, fmt.Errorf("%s: %w: %w", path, domain.ErrIO, ErrNoLastModified)
	}
	t, err := http.ParseTime(lm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w: %w", path, domain.ErrIO, ErrNoLastModified)
	}
	return t, nil
}

// FetchContent downloads the document body. A body larger than the
// configured maximum is an error rather than a truncated document.
func (f *Fetcher) FetchContent(ctx context.Context, path string) (string, error) {
	resp, err := f.do(ctx, http.MethodGet, path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", path, domain.ErrIO, err)
	}
	if int64(len(data)) > f.maxBytes {
		return "", fmt.Errorf("%s: %w: document exceeds %d bytes", path, domain.ErrIO, f.maxBytes)
	}
	return string(data), nil
}

// do sends a request and maps unsuccessful statuses to domain errors.
// The caller closes the body of a returned response.
func (f *Fetcher) do(ctx context.Context, method, path string) (*http.Response, error) {
	target, err := f.resolve(path)
	if err != nil {
		return nil, err
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, target, domain.ErrIO, err)
	}

	f.limiter.Observe(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", method, target, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w: status %d", method, target, domain.ErrIO, resp.StatusCode)
	}
	return resp, nil
}

func (f *Fetcher) resolve(path string) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if f.base == nil {
		return "", fmt.Errorf("%w: relative path %q without base url", domain.ErrInvalidInput, path)
	}
	return f.base.ResolveReference(u).String(), nil
}
