package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics used by the adoption service.
const (
	TopicAdoptionEvents = "adoption.events"
	TopicUserEvents     = "user.events"
)

// Event types carried in the CloudEvent envelope.
const (
	AnimalRegistered = "animal.registered.v1"
	AnimalAdopted    = "animal.adopted.v1"
	AnimalRemoved    = "animal.removed.v1"
	UserDeleted      = "user.deleted.v1"
)

// AnimalRegisteredEvent is published when a new listing is created.
type AnimalRegisteredEvent struct {
	AnimalID   string    `json:"animal_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AnimalAdoptedEvent is published when a listing transitions to ADOPTED.
type AnimalAdoptedEvent struct {
	AnimalID   string    `json:"animal_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AnimalRemovedEvent is published when a listing is deleted.
type AnimalRemovedEvent struct {
	AnimalID   string    `json:"animal_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserDeletedEvent is published when an account is removed. The adoption
// service consumes it to cascade-remove the user's listings and ownership
// rows.
type UserDeletedEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
