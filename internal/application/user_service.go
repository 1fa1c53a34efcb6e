package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userDomain "github.com/adotefacil/service-adoption/internal/domain/user"
	"github.com/adotefacil/service-adoption/internal/events"
	"github.com/adotefacil/service-adoption/pkg/domain"
	"github.com/adotefacil/service-adoption/pkg/kafka"
)

// Bcrypt costs match the original registration and password-change flows.
const (
	createHashCost = 10
	updateHashCost = 12
)

// CreateUserRequest is the request DTO for registering an account.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	CPF      string `json:"cpf" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest is the request DTO for updating an account. Empty fields
// are left unchanged.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

// UserDTO is the API response representation of an account. The password
// hash is never serialized.
type UserDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	CPF          string    `json:"cpf"`
	Role         string    `json:"role"`
	CreationDate time.Time `json:"creation_date"`
}

// UserService implements account use cases.
type UserService struct {
	repo     userDomain.Repository
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewUserService creates a new UserService. The producer may be nil, in
// which case events are not published.
func NewUserService(repo userDomain.Repository, producer *kafka.Producer, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, producer: producer, logger: logger}
}

// Create registers a new account after validating CPF, email and password
// policy. The password is stored as a bcrypt hash.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	if err := userDomain.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), createHashCost)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to hash password", err)
	}

	u, err := userDomain.NewUser(req.Name, req.Email, userDomain.NormalizeCPF(req.CPF), string(hash), "user")
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID().String()))
	result := toUserDTO(u)
	return &result, nil
}

// Get returns a single account by ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos, nil
}

// Update applies a partial update to an account, re-hashing the password
// when one is supplied.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cpf := req.CPF
	if cpf != "" {
		cpf = userDomain.NormalizeCPF(cpf)
	}
	if err := u.Update(req.Name, req.Email, cpf); err != nil {
		return nil, err
	}

	if req.Password != "" {
		if err := userDomain.ValidatePassword(req.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), updateHashCost)
		if err != nil {
			return nil, domain.NewPersistenceError("failed to hash password", err)
		}
		u.ChangePasswordHash(string(hash))
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("failed to update user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, err
	}

	result := toUserDTO(u)
	return &result, nil
}

// Delete removes an account and publishes a user-deleted event so listing
// ownership is cascaded asynchronously.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	s.publishEvent(ctx, events.TopicUserEvents, events.UserDeleted, id.String(), events.UserDeletedEvent{
		UserID:     id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *UserService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
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

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		CPF:          u.CPF(),
		Role:         u.Role(),
		CreationDate: u.CreationDate(),
	}
}
