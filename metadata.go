package lazyframe

import "context"

// Metadata is the title and thumbnail of a video.
type Metadata struct {
	Title     string
	Thumbnail string
}

// MetadataFetcher retrieves video metadata from a remote endpoint.
type MetadataFetcher interface {
	// FetchMetadata issues one request for the metadata of src.
	// Any network failure, bad status or malformed body is returned
	// as an error; callers treat it as non-fatal.
	FetchMetadata(ctx context.Context, src string) (*Metadata, error)
}
