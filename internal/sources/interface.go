package sources

import "context"

// Source interface defines the contract for all publication batch sources.
// FetchPublications returns flattened but not yet deduplicated publications.
type Source interface {
	GetName() string
	FetchPublications(ctx context.Context) (LoadResult, error)
	IsEnabled() bool
}
