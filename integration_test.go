//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adotefacil/service-adoption/internal/application"
	"github.com/adotefacil/service-adoption/internal/events"
)

// TestUserDeleted_PurgesListings verifies that when a UserDeletedEvent is
// published to user.events, the adoption service picks it up and removes
// every listing that user owned, leaving other users' listings alone.
func TestUserDeleted_PurgesListings(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupAdoptionStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	// Seed two listings for the doomed user and one for a survivor.
	doomedUser := uuid.New()
	survivorUser := uuid.New()

	req := application.CreateAnimalRequest{
		Name:        "Rex",
		Description: "Friendly dog",
		Image:       "https://img/rex.jpg",
		Category:    "dog",
		Status:      "AVAILABLE",
	}
	a1, err := stack.Service.Create(context.Background(), doomedUser, req)
	require.NoError(t, err)
	a2, err := stack.Service.Create(context.Background(), doomedUser, req)
	require.NoError(t, err)
	kept, err := stack.Service.Create(context.Background(), survivorUser, req)
	require.NoError(t, err)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Publish UserDeletedEvent.
	evt := events.UserDeletedEvent{
		UserID:     doomedUser,
		OccurredAt: time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, events.TopicUserEvents,
		"service-user", events.UserDeleted, evt)

	// Assert: the doomed user's listings disappear, the survivor's stays.
	waitForListingCount(t, infra.DB, []string{a1.ID, a2.ID}, 0, 15*time.Second)
	waitForListingCount(t, infra.DB, []string{kept.ID}, 1, 5*time.Second)
}

// TestToggleStatus_PublishesAdoptedEvent verifies that flipping a listing to
// ADOPTED emits an AnimalAdoptedEvent on adoption.events.
func TestToggleStatus_PublishesAdoptedEvent(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupAdoptionStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ownerID := uuid.New()
	created, err := stack.Service.Create(context.Background(), ownerID, application.CreateAnimalRequest{
		Name:        "Mia",
		Description: "Calm cat",
		Image:       "https://img/mia.jpg",
		Category:    "cat",
		Status:      "AVAILABLE",
	})
	require.NoError(t, err)

	toggled, err := stack.Service.ToggleStatus(context.Background(), ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ADOPTED", toggled.Status)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicAdoptionEvents,
		events.AnimalAdopted, 15*time.Second)

	var adopted events.AnimalAdoptedEvent
	require.NoError(t, ce.ParseData(&adopted))
	assert.Equal(t, created.ID, adopted.AnimalID)
	assert.Equal(t, ownerID, adopted.OwnerID)
}
