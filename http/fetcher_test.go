package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/lazyframe"
	lfhttp "github.com/fwojciec/lazyframe/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const watchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10"

func TestMetadataFetcher_FetchMetadata(t *testing.T) {
	t.Parallel()

	t.Run("returns title and thumbnail from json body", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.Query().Get("url")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"title":"Never Gonna Give You Up","thumbnail_url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg","provider_name":"YouTube"}`))
		}))
		defer server.Close()

		fetcher := lfhttp.NewMetadataFetcher(lfhttp.WithEndpoint(server.URL))

		meta, err := fetcher.FetchMetadata(context.Background(), watchURL)

		require.NoError(t, err)
		assert.Equal(t, "Never Gonna Give You Up", meta.Title)
		assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", meta.Thumbnail)
		assert.Equal(t, watchURL, gotURL)
	})

	t.Run("accepts redirect range statuses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotModified)
		}))
		defer server.Close()

		fetcher := lfhttp.NewMetadataFetcher(lfhttp.WithEndpoint(server.URL))

		// 304 has no body, so the shape check fails rather than the status check.
		_, err := fetcher.FetchMetadata(context.Background(), watchURL)

		require.Error(t, err)
		assert.Equal(t, lazyframe.EINVALID, lazyframe.ErrorCode(err))
	})

	t.Run("returns unavailable error for server errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := lfhttp.NewMetadataFetcher(lfhttp.WithEndpoint(server.URL))

		_, err := fetcher.FetchMetadata(context.Background(), watchURL)

		require.Error(t, err)
		assert.Equal(t, lazyframe.EUNAVAILABLE, lazyframe.ErrorCode(err))
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("returns error for malformed json", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"title":`))
		}))
		defer server.Close()

		fetcher := lfhttp.NewMetadataFetcher(lfhttp.WithEndpoint(server.URL))

		_, err := fetcher.FetchMetadata(context.Background(), watchURL)

		require.Error(t, err)
		assert.Equal(t, lazyframe.EINVALID, lazyframe.ErrorCode(err))
	})

	t.Run("returns error for unexpected shape", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`["not", "an", "object"]`))
		}))
		defer server.Close()

		fetcher := lfhttp.NewMetadataFetcher(lfhttp.WithEndpoint(server.URL))

		_, err := fetcher.FetchMetadata(context.Background(), watchURL)

		require.Error(t, err)
	})

	t.Run("returns not found for endpoint error body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"no matching providers found"}`))
		}))
		defer server.Close()

		fetcher := lfhttp.NewMetadataFetcher(lfhttp.WithEndpoint(server.URL))

		_, err := fetcher.FetchMetadata(context.Background(), "https://example.com/x")

		require.Error(t, err)
		assert.Equal(t, lazyframe.ENOTFOUND, lazyframe.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(`{"title":"late"}`))
		}))
		defer server.Close()

		fetcher := lfhttp.NewMetadataFetcher(
			lfhttp.WithEndpoint(server.URL),
			lfhttp.WithTimeout(10*time.Millisecond),
		)

		_, err := fetcher.FetchMetadata(context.Background(), watchURL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation while rate limited", func(t *testing.T) {
		t.Parallel()

		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
		require.True(t, limiter.Allow())

		fetcher := lfhttp.NewMetadataFetcher(
			lfhttp.WithEndpoint("http://non-existent-host.invalid/embed"),
			lfhttp.WithLimiter(limiter),
		)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.FetchMetadata(ctx, watchURL)
		require.Error(t, err)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := lfhttp.NewMetadataFetcher(
			lfhttp.WithEndpoint("http://non-existent-host.invalid/embed"),
			lfhttp.WithTimeout(100*time.Millisecond),
		)

		_, err := fetcher.FetchMetadata(context.Background(), watchURL)
		require.Error(t, err)
	})
}

func TestMetadataFetcher_URL(t *testing.T) {
	t.Parallel()

	fetcher := lfhttp.NewMetadataFetcher()

	assert.Equal(t,
		"https://noembed.com/embed?url=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3DdQw4w9WgXcQ%26t%3D10",
		fetcher.URL(watchURL),
	)
}

// Compile-time verification that MetadataFetcher implements lazyframe.MetadataFetcher
var _ lazyframe.MetadataFetcher = (*lfhttp.MetadataFetcher)(nil)
