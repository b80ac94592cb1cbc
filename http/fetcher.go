// Package http provides an HTTP implementation of lazyframe.MetadataFetcher
// backed by an oEmbed-style endpoint such as noembed.com.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/lazyframe"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for metadata requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultEndpoint is the metadata endpoint used when none is configured.
const DefaultEndpoint = "https://noembed.com/embed"

// maxBodySize caps how much of a response body is decoded.
const maxBodySize = 1 << 20

// Ensure MetadataFetcher implements lazyframe.MetadataFetcher at compile time.
var _ lazyframe.MetadataFetcher = (*MetadataFetcher)(nil)

// MetadataFetcher retrieves video titles and thumbnails with a single GET
// request per call. Failed requests are never retried.
type MetadataFetcher struct {
	client   *http.Client
	timeout  time.Duration
	endpoint string
	limiter  *rate.Limiter
}

// Option configures a MetadataFetcher.
type Option func(*MetadataFetcher)

// WithTimeout sets the timeout for metadata requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *MetadataFetcher) {
		f.timeout = d
	}
}

// WithEndpoint sets the metadata endpoint. The source URL is passed in the
// url query parameter.
func WithEndpoint(endpoint string) Option {
	return func(f *MetadataFetcher) {
		f.endpoint = endpoint
	}
}

// WithLimiter throttles outgoing requests. Each fetch waits for a token
// before the request is sent.
func WithLimiter(l *rate.Limiter) Option {
	return func(f *MetadataFetcher) {
		f.limiter = l
	}
}

// NewMetadataFetcher creates a new HTTP-based MetadataFetcher.
func NewMetadataFetcher(opts ...Option) *MetadataFetcher {
	f := &MetadataFetcher{
		timeout:  DefaultFetchTimeout,
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// response is the subset of the oEmbed body that is read.
type response struct {
	Title        *string `json:"title"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Error        string  `json:"error"`
}

// FetchMetadata requests the metadata of src from the endpoint.
// Statuses from 200 to 399 are accepted; the body must be a JSON object
// with a title or thumbnail_url field.
func (f *MetadataFetcher) FetchMetadata(ctx context.Context, src string) (*lazyframe.Metadata, error) {
	endpoint := f.URL(src)

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, lazyframe.Errorf(lazyframe.EINVALID, "invalid metadata endpoint: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, lazyframe.Errorf(lazyframe.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, lazyframe.Errorf(lazyframe.EINVALID, "malformed metadata for %s: %v", src, err)
	}
	if r.Error != "" {
		return nil, lazyframe.Errorf(lazyframe.ENOTFOUND, "metadata for %s: %s", src, r.Error)
	}
	if r.Title == nil && r.ThumbnailURL == nil {
		return nil, lazyframe.Errorf(lazyframe.EINVALID, "metadata for %s has no title or thumbnail", src)
	}

	meta := &lazyframe.Metadata{}
	if r.Title != nil {
		meta.Title = *r.Title
	}
	if r.ThumbnailURL != nil {
		meta.Thumbnail = *r.ThumbnailURL
	}
	return meta, nil
}

// URL returns the endpoint URL queried for src.
func (f *MetadataFetcher) URL(src string) string {
	return f.endpoint + "?url=" + url.QueryEscape(src)
}
