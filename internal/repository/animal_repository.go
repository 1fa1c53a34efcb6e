package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	animalDomain "github.com/adotefacil/service-adoption/internal/domain/animal"
	"github.com/adotefacil/service-adoption/pkg/domain"
)

// AnimalModel is the GORM model for the animals table.
type AnimalModel struct {
	ID           string    `gorm:"primaryKey;size:64"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Description  string    `gorm:"type:text;not null"`
	Image        string    `gorm:"type:text;not null"`
	Category     string    `gorm:"type:varchar(50);not null;index"`
	CreationDate time.Time `gorm:"type:timestamptz;not null;index"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	Version      int64     `gorm:"not null;default:1"`
}

func (AnimalModel) TableName() string { return "animals" }

// OwnershipModel is the GORM model for the ownerships join table. The
// composite primary key is the (user, animal) pair; the row carries no
// identity of its own.
type OwnershipModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AnimalID  string    `gorm:"primaryKey;size:64"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (OwnershipModel) TableName() string { return "ownerships" }

// GormAnimalRepository implements animal.Repository using GORM. Every
// mutation that requires ownership performs the check and the write inside
// one transaction.
type GormAnimalRepository struct {
	db *gorm.DB
}

// NewGormAnimalRepository creates a new GormAnimalRepository.
func NewGormAnimalRepository(db *gorm.DB) *GormAnimalRepository {
	return &GormAnimalRepository{db: db}
}

// CreateOwned persists a listing and its ownership row in one transaction.
func (r *GormAnimalRepository) CreateOwned(ctx context.Context, a *animalDomain.Animal, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toAnimalModel(a)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewConflictError("animal already registered: " + a.ID())
			}
			return domain.NewPersistenceError("failed to create animal", err)
		}

		ownership := OwnershipModel{
			UserID:    ownerID,
			AnimalID:  a.ID(),
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&ownership).Error; err != nil {
			return domain.NewPersistenceError("failed to create ownership", err)
		}
		return nil
	})
}

// FindByID retrieves a listing by its identifier.
func (r *GormAnimalRepository) FindByID(ctx context.Context, id string) (*animalDomain.Animal, error) {
	var model AnimalModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Animal", id)
		}
		return nil, domain.NewPersistenceError("failed to find animal", err)
	}
	return toAnimalDomain(&model), nil
}

// FindAll retrieves every listing.
func (r *GormAnimalRepository) FindAll(ctx context.Context) ([]*animalDomain.Animal, error) {
	return r.findMany(ctx, r.db.WithContext(ctx))
}

// FindByOwner retrieves the listings owned by a user.
func (r *GormAnimalRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*animalDomain.Animal, error) {
	q := r.db.WithContext(ctx).
		Select("animals.*").
		Joins("JOIN ownerships ON ownerships.animal_id = animals.id").
		Where("ownerships.user_id = ?", ownerID)
	return r.findMany(ctx, q)
}

// FindByTerm retrieves listings matching the term in name or description.
// LIKE is case-sensitive in PostgreSQL, matching the external sources.
func (r *GormAnimalRepository) FindByTerm(ctx context.Context, term string) ([]*animalDomain.Animal, error) {
	pattern := "%" + term + "%"
	q := r.db.WithContext(ctx).Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	return r.findMany(ctx, q)
}

// FindByCategory retrieves listings with the exact category.
func (r *GormAnimalRepository) FindByCategory(ctx context.Context, category string) ([]*animalDomain.Animal, error) {
	q := r.db.WithContext(ctx).Where("category = ?", category)
	return r.findMany(ctx, q)
}

// FindByStatus retrieves listings with the exact status.
func (r *GormAnimalRepository) FindByStatus(ctx context.Context, status animalDomain.Status) ([]*animalDomain.Animal, error) {
	q := r.db.WithContext(ctx).Where("status = ?", string(status))
	return r.findMany(ctx, q)
}

// FindByCreationDateRange retrieves listings created within [from, to].
func (r *GormAnimalRepository) FindByCreationDateRange(ctx context.Context, from, to time.Time) ([]*animalDomain.Animal, error) {
	q := r.db.WithContext(ctx).Where("creation_date >= ? AND creation_date <= ?", from, to)
	return r.findMany(ctx, q)
}

// Update persists field changes to an owned listing with optimistic locking.
func (r *GormAnimalRepository) Update(ctx context.Context, ownerID uuid.UUID, a *animalDomain.Animal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.requireOwnership(tx, ownerID, a.ID()); err != nil {
			return err
		}

		model := toAnimalModel(a)
		previousVersion := a.Version() - 1

		result := tx.Model(&AnimalModel{}).
			Where("id = ? AND version = ?", model.ID, previousVersion).
			Updates(map[string]interface{}{
				"name":        model.Name,
				"description": model.Description,
				"image":       model.Image,
				"category":    model.Category,
				"version":     model.Version,
			})
		if result.Error != nil {
			return domain.NewPersistenceError("failed to update animal", result.Error)
		}
		if result.RowsAffected == 0 {
			if err := tx.Where("id = ?", model.ID).First(&AnimalModel{}).Error; errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("Animal", model.ID)
			}
			return domain.NewConflictError("animal was modified by another transaction")
		}
		return nil
	})
}

// Delete removes an owned listing and its ownership rows atomically. The
// ownership rows and the animal row go together or not at all.
func (r *GormAnimalRepository) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.requireOwnership(tx, ownerID, id); err != nil {
			return err
		}

		if err := tx.Where("animal_id = ?", id).Delete(&OwnershipModel{}).Error; err != nil {
			return domain.NewPersistenceError("failed to delete ownership", err)
		}

		result := tx.Where("id = ?", id).Delete(&AnimalModel{})
		if result.Error != nil {
			return domain.NewPersistenceError("failed to delete animal", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Animal", id)
		}
		return nil
	})
}

// SetStatus transitions an owned listing from the expected status to the
// next one as a single conditional update. Zero rows affected means either
// the listing is gone or another caller won the transition.
func (r *GormAnimalRepository) SetStatus(ctx context.Context, ownerID uuid.UUID, id string, expected, next animalDomain.Status) (*animalDomain.Animal, error) {
	var updated *animalDomain.Animal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.requireOwnership(tx, ownerID, id); err != nil {
			return err
		}

		result := tx.Model(&AnimalModel{}).
			Where("id = ? AND status = ?", id, string(expected)).
			Updates(map[string]interface{}{
				"status":  string(next),
				"version": gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return domain.NewPersistenceError("failed to update animal status", result.Error)
		}
		if result.RowsAffected == 0 {
			var model AnimalModel
			if err := tx.Where("id = ?", id).First(&model).Error; errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("Animal", id)
			}
			return domain.NewConflictError(
				fmt.Sprintf("animal status changed concurrently, expected %s", expected))
		}

		var model AnimalModel
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			return domain.NewPersistenceError("failed to reload animal", err)
		}
		updated = toAnimalDomain(&model)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// OwnershipExists reports whether the (user, listing) ownership row exists.
func (r *GormAnimalRepository) OwnershipExists(ctx context.Context, ownerID uuid.UUID, animalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OwnershipModel{}).
		Where("user_id = ? AND animal_id = ?", ownerID, animalID).
		Count(&count).Error
	if err != nil {
		return false, domain.NewPersistenceError("failed to check ownership", err)
	}
	return count > 0, nil
}

// ListAll retrieves all listings with pagination (admin).
func (r *GormAnimalRepository) ListAll(ctx context.Context, page, limit int) ([]*animalDomain.Animal, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&AnimalModel{}).Count(&total).Error; err != nil {
		return nil, 0, domain.NewPersistenceError("failed to count animals", err)
	}

	offset := (page - 1) * limit
	q := r.db.WithContext(ctx).Offset(offset).Limit(limit)
	animals, err := r.findMany(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return animals, total, nil
}

// CountByStatus returns listing counts grouped by status (admin).
func (r *GormAnimalRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&AnimalModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.NewPersistenceError("failed to count animals by status", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// RemoveAllOwnedBy deletes every listing a user owns, with all ownership
// rows, in one transaction. Returns the number of listings removed.
func (r *GormAnimalRepository) RemoveAllOwnedBy(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&OwnershipModel{}).
			Where("user_id = ?", ownerID).
			Pluck("animal_id", &ids).Error; err != nil {
			return domain.NewPersistenceError("failed to list owned animals", err)
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("animal_id IN ?", ids).Delete(&OwnershipModel{}).Error; err != nil {
			return domain.NewPersistenceError("failed to delete ownerships", err)
		}

		result := tx.Where("id IN ?", ids).Delete(&AnimalModel{})
		if result.Error != nil {
			return domain.NewPersistenceError("failed to delete animals", result.Error)
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// requireOwnership fails with a forbidden error when no ownership row exists
// for the (user, listing) pair. Runs inside the caller's transaction.
func (r *GormAnimalRepository) requireOwnership(tx *gorm.DB, ownerID uuid.UUID, animalID string) error {
	var count int64
	err := tx.Model(&OwnershipModel{}).
		Where("user_id = ? AND animal_id = ?", ownerID, animalID).
		Count(&count).Error
	if err != nil {
		return domain.NewPersistenceError("failed to check ownership", err)
	}
	if count == 0 {
		return domain.NewForbiddenError("user does not own this animal")
	}
	return nil
}

func (r *GormAnimalRepository) findMany(ctx context.Context, q *gorm.DB) ([]*animalDomain.Animal, error) {
	var models []AnimalModel
	if err := q.Order("creation_date DESC").Find(&models).Error; err != nil {
		return nil, domain.NewPersistenceError("failed to query animals", err)
	}
	animals := make([]*animalDomain.Animal, len(models))
	for i, m := range models {
		animals[i] = toAnimalDomain(&m)
	}
	return animals, nil
}

// --- Conversions ---

func toAnimalModel(a *animalDomain.Animal) *AnimalModel {
	return &AnimalModel{
		ID:           a.ID(),
		Name:         a.Name(),
		Description:  a.Description(),
		Image:        a.Image(),
		Category:     a.Category(),
		CreationDate: a.CreationDate(),
		Status:       string(a.Status()),
		Version:      a.Version(),
	}
}

func toAnimalDomain(m *AnimalModel) *animalDomain.Animal {
	return animalDomain.Reconstruct(
		m.ID, m.Name, m.Description, m.Image, m.Category,
		m.CreationDate,
		animalDomain.Status(m.Status),
		m.Version,
	)
}
