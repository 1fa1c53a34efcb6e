package animal

import (
	"time"

	"github.com/google/uuid"
)

// Ownership links a user to a listing they may mutate. It is keyed by the
// (UserID, AnimalID) pair and has no identity of its own. An ownership row is
// created in the same transaction as its listing; its absence for a caller is
// an authorization failure, not a not-found.
type Ownership struct {
	UserID    uuid.UUID
	AnimalID  string
	CreatedAt time.Time
}
