package importer

import (
	"context"

	"github.com/vmunix/arrimport/internal/radarr"
)

//go:generate mockgen -destination mocks/mock_catalog.go -package mocks github.com/vmunix/arrimport/internal/importer Catalog

// Catalog is the remote movie catalog the import runs against.
// *radarr.Client satisfies it.
type Catalog interface {
	// ExistingTMDBIDs lists the TMDB IDs already present in the library.
	ExistingTMDBIDs(ctx context.Context) (map[int64]struct{}, error)

	// Lookup performs a fuzzy search; result order is the service's
	// relevance order.
	Lookup(ctx context.Context, term string) ([]radarr.Movie, error)

	// Add creates a library entry from a lookup result.
	Add(ctx context.Context, movie radarr.Movie, opts radarr.AddOptions) error
}
