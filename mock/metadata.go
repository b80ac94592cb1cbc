package mock

import (
	"context"

	"github.com/fwojciec/lazyframe"
)

var _ lazyframe.MetadataFetcher = (*MetadataFetcher)(nil)

// MetadataFetcher is a mock implementation of lazyframe.MetadataFetcher.
type MetadataFetcher struct {
	FetchMetadataFn func(ctx context.Context, src string) (*lazyframe.Metadata, error)
}

func (f *MetadataFetcher) FetchMetadata(ctx context.Context, src string) (*lazyframe.Metadata, error) {
	return f.FetchMetadataFn(ctx, src)
}
