package animal

import (
	"context"
	"time"
)

// Source is a read-only external catalog whose entries are merged into
// search results. Implementations fetch the full catalog and filter
// in memory; no server-side filtering is assumed. A failed or malformed
// fetch surfaces as a retrieval error and fails the whole query.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// FetchAll retrieves the full catalog.
	FetchAll(ctx context.Context) ([]*Animal, error)

	// FindByTerm returns entries whose name or description contains the term
	// (case-sensitive).
	FindByTerm(ctx context.Context, term string) ([]*Animal, error)

	// FindByCategory returns entries with the exact category.
	FindByCategory(ctx context.Context, category string) ([]*Animal, error)

	// FindByStatus returns entries with the exact status.
	FindByStatus(ctx context.Context, status Status) ([]*Animal, error)

	// FindByCreationDate returns entries whose creation date equals the
	// given instant at millisecond granularity. Unlike the store query,
	// which widens to the whole calendar day, this is an exact match.
	FindByCreationDate(ctx context.Context, at time.Time) ([]*Animal, error)
}
