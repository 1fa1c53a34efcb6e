package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	pair, err := manager.GeneratePair(userID, RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := manager.Validate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidate_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	other := NewJWTManager("other-secret", 15*time.Minute, 24*time.Hour)

	pair, err := manager.GeneratePair(uuid.New(), RoleAdmin)
	require.NoError(t, err)

	_, err = other.Validate(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidate_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	pair, err := manager.GeneratePair(uuid.New(), RoleUser)
	require.NoError(t, err)

	_, err = manager.Validate(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	_, err := manager.Validate("not.a.token")
	assert.Error(t, err)
}
