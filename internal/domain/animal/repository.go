package animal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for listings and their
// ownership rows. Mutations take the calling user's ID and fail with a
// forbidden error when no ownership row exists for (user, listing); the
// ownership check and the write happen inside one transaction.
type Repository interface {
	// CreateOwned persists a new listing together with its ownership row in
	// a single transaction. A duplicate identifier yields a conflict error.
	CreateOwned(ctx context.Context, a *Animal, ownerID uuid.UUID) error

	// FindByID retrieves a listing by its identifier.
	FindByID(ctx context.Context, id string) (*Animal, error)

	// FindAll retrieves every listing in the store.
	FindAll(ctx context.Context) ([]*Animal, error)

	// FindByOwner retrieves the listings owned by a user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Animal, error)

	// FindByTerm retrieves listings whose name or description contains the
	// term (case-sensitive).
	FindByTerm(ctx context.Context, term string) ([]*Animal, error)

	// FindByCategory retrieves listings with the exact category.
	FindByCategory(ctx context.Context, category string) ([]*Animal, error)

	// FindByStatus retrieves listings with the exact status.
	FindByStatus(ctx context.Context, status Status) ([]*Animal, error)

	// FindByCreationDateRange retrieves listings whose creation date falls
	// within the closed interval [from, to].
	FindByCreationDateRange(ctx context.Context, from, to time.Time) ([]*Animal, error)

	// Update persists field changes to an owned listing with optimistic
	// locking.
	Update(ctx context.Context, ownerID uuid.UUID, a *Animal) error

	// Delete removes an owned listing and all of its ownership rows in a
	// single transaction.
	Delete(ctx context.Context, ownerID uuid.UUID, id string) error

	// SetStatus transitions an owned listing from the expected status to the
	// next one. A transition that finds a different current status yields a
	// conflict error, which closes the concurrent-toggle race.
	SetStatus(ctx context.Context, ownerID uuid.UUID, id string, expected, next Status) (*Animal, error)

	// OwnershipExists reports whether the (user, listing) ownership row is
	// present.
	OwnershipExists(ctx context.Context, ownerID uuid.UUID, animalID string) (bool, error)

	// ListAll retrieves all listings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Animal, int64, error)

	// CountByStatus returns listing counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// RemoveAllOwnedBy deletes every listing a user owns, along with the
	// ownership rows, in a single transaction. Used when a user account is
	// deleted. Returns the number of listings removed.
	RemoveAllOwnedBy(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
