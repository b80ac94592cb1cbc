// Package slog provides log/slog decorators for lazyframe services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lazyframe"
)

// Ensure LoggingMetadataFetcher implements lazyframe.MetadataFetcher.
var _ lazyframe.MetadataFetcher = (*LoggingMetadataFetcher)(nil)

// LoggingMetadataFetcher wraps a MetadataFetcher with logging. Failed
// fetches are swallowed by the loader, so this is where they surface.
type LoggingMetadataFetcher struct {
	next   lazyframe.MetadataFetcher
	logger *slog.Logger
}

// NewLoggingMetadataFetcher creates a new LoggingMetadataFetcher.
func NewLoggingMetadataFetcher(next lazyframe.MetadataFetcher, logger *slog.Logger) *LoggingMetadataFetcher {
	return &LoggingMetadataFetcher{next: next, logger: logger}
}

// FetchMetadata logs the source URL and outcome and delegates to the
// wrapped fetcher.
func (f *LoggingMetadataFetcher) FetchMetadata(ctx context.Context, src string) (meta *lazyframe.Metadata, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("metadata fetch failed",
				"src", src,
				"code", lazyframe.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Info("metadata fetch",
			"src", src,
			"title", meta != nil && meta.Title != "",
			"thumbnail", meta != nil && meta.Thumbnail != "",
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.FetchMetadata(ctx, src)
}
