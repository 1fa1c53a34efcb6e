package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/adotefacil/service-adoption/pkg/domain"
)

// User is the aggregate root for a registered account. The password is stored
// only as a bcrypt hash and never leaves the service in responses.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	cpf          string
	passwordHash string
	role         string
	creationDate time.Time
	updatedAt    time.Time
}

// NewUser creates a new account with validated fields. The caller hashes the
// password; plain-text passwords never reach the aggregate.
func NewUser(name, email, cpf, passwordHash, role string) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if !ValidEmail(email) {
		return nil, domain.NewValidationError("invalid email address")
	}
	if !ValidCPF(cpf) {
		return nil, domain.NewValidationError("invalid CPF")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}
	if role == "" {
		role = "user"
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		cpf:          cpf,
		passwordHash: passwordHash,
		role:         role,
		creationDate: now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email, cpf, passwordHash, role string, creationDate, updatedAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		cpf:          cpf,
		passwordHash: passwordHash,
		role:         role,
		creationDate: creationDate,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID           { return u.id }
func (u *User) Name() string            { return u.name }
func (u *User) Email() string           { return u.email }
func (u *User) CPF() string             { return u.cpf }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) Role() string            { return u.role }
func (u *User) CreationDate() time.Time { return u.creationDate }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }

// --- Behavior ---

// Update applies partial updates to the account. Empty fields are left
// unchanged; email and CPF are re-validated when supplied.
func (u *User) Update(name, email, cpf string) error {
	if email != "" {
		if !ValidEmail(email) {
			return domain.NewValidationError("invalid email address")
		}
		u.email = email
	}
	if cpf != "" {
		if !ValidCPF(cpf) {
			return domain.NewValidationError("invalid CPF")
		}
		u.cpf = cpf
	}
	if name != "" {
		u.name = name
	}
	u.updatedAt = time.Now().UTC()
	return nil
}

// ChangePasswordHash replaces the stored password hash.
func (u *User) ChangePasswordHash(hash string) {
	u.passwordHash = hash
	u.updatedAt = time.Now().UTC()
}
