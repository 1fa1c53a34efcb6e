package application

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userDomain "github.com/adotefacil/service-adoption/internal/domain/user"
	"github.com/adotefacil/service-adoption/pkg/auth"
	"github.com/adotefacil/service-adoption/pkg/domain"
)

// LoginRequest is the request DTO for authenticating an account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthService authenticates accounts and issues token pairs.
type AuthService struct {
	users      userDomain.Repository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.Repository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtManager: jwtManager, logger: logger}
}

// Login verifies the credentials and returns a fresh token pair. Unknown
// email and wrong password report the same error so credentials cannot be
// probed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*auth.TokenPair, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	pair, err := s.jwtManager.GeneratePair(u.ID(), u.Role())
	if err != nil {
		s.logger.Error("failed to issue tokens", zap.String("user_id", u.ID().String()), zap.Error(err))
		return nil, domain.NewPersistenceError("failed to issue tokens", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", u.ID().String()))
	return pair, nil
}
