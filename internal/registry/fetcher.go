package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout      = 30 * time.Second
	cacheExpiration     = 10 * time.Minute
	userAgent           = "drupal-init (+https://github.com/jakoblorz/drupal-init)"
	maxMetadataBodySize = 32 << 20
)

// Fetcher downloads repository documents and caches them for the lifetime of
// the process. Both the package existence check and version resolution read
// the same metadata, so every document is requested at most once per run.
type Fetcher struct {
	client   *http.Client
	cache    *cache.Cache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default pooled client
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithTimeout sets the per-request timeout of the default client
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithCacheTTL sets how long fetched documents are reused
func WithCacheTTL(ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if ttl > 0 {
			f.cacheTTL = ttl
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher backed by a cleanhttp client
func NewFetcher(options ...FetcherOption) *Fetcher {
	client := cleanhttp.DefaultClient()
	client.Timeout = defaultTimeout

	f := &Fetcher{
		client:   client,
		cacheTTL: cacheExpiration,
		logger:   zerolog.Nop(),
	}

	for _, option := range options {
		option(f)
	}

	f.cache = cache.New(f.cacheTTL, 2*f.cacheTTL)

	return f
}

// Get returns the body of url. A 404 yields ErrNotFound; other non-2xx
// statuses and transport failures are returned as errors without retrying.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if cached, ok := f.cache.Get(url); ok {
		f.logger.Debug().Str("url", url).Msg("cache hit")
		return cached.([]byte), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	f.logger.Debug().Str("url", url).Msg("fetching")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	f.cache.SetDefault(url, body)
	return body, nil
}
