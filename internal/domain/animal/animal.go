package animal

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adotefacil/service-adoption/pkg/domain"
)

// Animal is the aggregate root for an adoptable-creature listing. Listings
// born in the store carry a random 128-bit identifier; listings mapped from
// external catalogs keep whatever opaque identifier the catalog assigned.
type Animal struct {
	id           string
	name         string
	description  string
	image        string
	category     string
	creationDate time.Time
	status       Status
	version      int64
}

// NewAnimal creates a new listing with validated fields and a fresh
// identifier. A zero creation date defaults to now.
func NewAnimal(name, description, image, category string, creationDate time.Time, status Status) (*Animal, error) {
	if name == "" {
		return nil, domain.NewValidationError("animal name is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("animal description is required")
	}
	if image == "" {
		return nil, domain.NewValidationError("animal image is required")
	}
	if category == "" {
		return nil, domain.NewValidationError("animal category is required")
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("invalid animal status: " + string(status))
	}
	if creationDate.IsZero() {
		creationDate = time.Now().UTC()
	}

	return &Animal{
		id:           uuid.NewString(),
		name:         name,
		description:  description,
		image:        image,
		category:     category,
		creationDate: creationDate,
		status:       status,
		version:      1,
	}, nil
}

// Reconstruct rebuilds an Animal from persistence or external-source data
// (no validation).
func Reconstruct(id, name, description, image, category string, creationDate time.Time, status Status, version int64) *Animal {
	return &Animal{
		id:           id,
		name:         name,
		description:  description,
		image:        image,
		category:     category,
		creationDate: creationDate,
		status:       status,
		version:      version,
	}
}

// --- Getters ---

func (a *Animal) ID() string              { return a.id }
func (a *Animal) Name() string            { return a.name }
func (a *Animal) Description() string     { return a.description }
func (a *Animal) Image() string           { return a.image }
func (a *Animal) Category() string        { return a.category }
func (a *Animal) CreationDate() time.Time { return a.creationDate }
func (a *Animal) Status() Status          { return a.status }
func (a *Animal) Version() int64          { return a.version }

// --- Behavior ---

// Update applies partial updates to the listing. Empty fields are left
// unchanged. Status changes are not part of Update; they go through the
// conditional status transition on the repository.
func (a *Animal) Update(name, description, image, category string) {
	if name != "" {
		a.name = name
	}
	if description != "" {
		a.description = description
	}
	if image != "" {
		a.image = image
	}
	if category != "" {
		a.category = category
	}
	a.version++
}

// MatchesTerm reports whether the term occurs in the listing's name or
// description. The match is case-sensitive.
func (a *Animal) MatchesTerm(term string) bool {
	return strings.Contains(a.name, term) || strings.Contains(a.description, term)
}
