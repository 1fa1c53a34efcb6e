package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	animalDomain "github.com/adotefacil/service-adoption/internal/domain/animal"
	"github.com/adotefacil/service-adoption/internal/events"
	"github.com/adotefacil/service-adoption/pkg/kafka"
)

// CreateAnimalRequest is the request DTO for registering a listing.
type CreateAnimalRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description" binding:"required"`
	Image        string     `json:"image" binding:"required"`
	Category     string     `json:"category" binding:"required"`
	CreationDate *time.Time `json:"creation_date"`
	Status       string     `json:"status" binding:"required"`
}

// UpdateAnimalRequest is the request DTO for updating a listing. Empty
// fields are left unchanged.
type UpdateAnimalRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// AnimalDTO is the API response representation of a listing.
type AnimalDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	CreationDate time.Time `json:"creation_date"`
	Status       string    `json:"status"`
}

// AnimalService implements the listing use cases: registration, lookup and
// the ownership-gated mutations.
type AnimalService struct {
	repo     animalDomain.Repository
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewAnimalService creates a new AnimalService. The producer may be nil, in
// which case events are not published.
func NewAnimalService(repo animalDomain.Repository, producer *kafka.Producer, logger *zap.Logger) *AnimalService {
	return &AnimalService{repo: repo, producer: producer, logger: logger}
}

// Create registers a new listing owned by the given user. The listing and
// its ownership row are persisted in one transaction.
func (s *AnimalService) Create(ctx context.Context, ownerID uuid.UUID, req CreateAnimalRequest) (*AnimalDTO, error) {
	var creationDate time.Time
	if req.CreationDate != nil {
		creationDate = *req.CreationDate
	}

	a, err := animalDomain.NewAnimal(req.Name, req.Description, req.Image, req.Category, creationDate, animalDomain.Status(req.Status))
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateOwned(ctx, a, ownerID); err != nil {
		s.logger.Error("failed to create animal", zap.Error(err))
		return nil, err
	}

	s.logger.Info("animal registered",
		zap.String("animal_id", a.ID()),
		zap.String("owner_id", ownerID.String()),
	)
	s.publishEvent(ctx, events.TopicAdoptionEvents, events.AnimalRegistered, a.ID(), events.AnimalRegisteredEvent{
		AnimalID:   a.ID(),
		OwnerID:    ownerID,
		Name:       a.Name(),
		Category:   a.Category(),
		Status:     string(a.Status()),
		OccurredAt: time.Now().UTC(),
	})

	result := toAnimalDTO(a)
	return &result, nil
}

// Get returns a single listing by ID.
func (s *AnimalService) Get(ctx context.Context, id string) (*AnimalDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAnimalDTO(a)
	return &result, nil
}

// GetMine returns the listings owned by the given user.
func (s *AnimalService) GetMine(ctx context.Context, ownerID uuid.UUID) ([]AnimalDTO, error) {
	animals, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toAnimalDTOs(animals), nil
}

// Update applies a partial update to an owned listing.
func (s *AnimalService) Update(ctx context.Context, ownerID uuid.UUID, id string, req UpdateAnimalRequest) (*AnimalDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Update(req.Name, req.Description, req.Image, req.Category)

	if err := s.repo.Update(ctx, ownerID, a); err != nil {
		s.logger.Error("failed to update animal", zap.String("animal_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("animal updated", zap.String("animal_id", id))
	result := toAnimalDTO(a)
	return &result, nil
}

// Delete removes an owned listing and its ownership rows.
func (s *AnimalService) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info("animal deleted",
		zap.String("animal_id", id),
		zap.String("owner_id", ownerID.String()),
	)
	s.publishEvent(ctx, events.TopicAdoptionEvents, events.AnimalRemoved, id, events.AnimalRemovedEvent{
		AnimalID:   id,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ToggleStatus reads the listing's current status and flips it: AVAILABLE
// becomes ADOPTED and anything else becomes AVAILABLE. The flip itself is a
// conditional update, so two concurrent toggles cannot silently collapse
// into one; the loser gets a conflict error.
func (s *AnimalService) ToggleStatus(ctx context.Context, ownerID uuid.UUID, id string) (*AnimalDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := a.Status()
	next := current.Toggle()

	updated, err := s.repo.SetStatus(ctx, ownerID, id, current, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info("animal status toggled",
		zap.String("animal_id", id),
		zap.String("status", string(next)),
	)
	if next == animalDomain.StatusAdopted {
		s.publishEvent(ctx, events.TopicAdoptionEvents, events.AnimalAdopted, id, events.AnimalAdoptedEvent{
			AnimalID:   id,
			OwnerID:    ownerID,
			OccurredAt: time.Now().UTC(),
		})
	}

	result := toAnimalDTO(updated)
	return &result, nil
}

// PurgeUserListings removes every listing a deleted user owned. Called by
// the user-deleted event consumer.
func (s *AnimalService) PurgeUserListings(ctx context.Context, userID uuid.UUID) (int64, error) {
	removed, err := s.repo.RemoveAllOwnedBy(ctx, userID)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("purged listings of deleted user",
			zap.String("user_id", userID.String()),
			zap.Int64("removed", removed),
		)
	}
	return removed, nil
}

// --- Admin methods ---

// AnimalStatsDTO holds listing statistics for the admin dashboard.
type AnimalStatsDTO struct {
	TotalAnimals int64            `json:"total_animals"`
	ByStatus     map[string]int64 `json:"by_status"`
}

// ListAll returns a paginated list of all listings (admin).
func (s *AnimalService) ListAll(ctx context.Context, page, limit int) ([]AnimalDTO, int64, error) {
	animals, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toAnimalDTOs(animals), total, nil
}

// Stats returns aggregate listing statistics (admin).
func (s *AnimalService) Stats(ctx context.Context) (*AnimalStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &AnimalStatsDTO{TotalAnimals: total, ByStatus: counts}, nil
}

// --- Helpers ---

func (s *AnimalService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent("service-adoption", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.Publish(ctx, topic, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toAnimalDTO(a *animalDomain.Animal) AnimalDTO {
	return AnimalDTO{
		ID:           a.ID(),
		Name:         a.Name(),
		Description:  a.Description(),
		Image:        a.Image(),
		Category:     a.Category(),
		CreationDate: a.CreationDate(),
		Status:       string(a.Status()),
	}
}

func toAnimalDTOs(animals []*animalDomain.Animal) []AnimalDTO {
	dtos := make([]AnimalDTO, len(animals))
	for i, a := range animals {
		dtos[i] = toAnimalDTO(a)
	}
	return dtos
}
