//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"envelope-ledger/internal/domain/user"
	"envelope-ledger/internal/pkg/jwt"
	"envelope-ledger/internal/usecase"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "validator-secret"

func signClaims(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	claims.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(time.Hour))
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenValidator(t *testing.T) {
	service := jwt.NewService(secret, time.Hour)
	validator := usecase.NewTokenValidator(service)

	t.Run("success: actor carries id and role", func(t *testing.T) {
		userID := uuid.New()
		token, err := service.GenerateToken(userID, user.RoleBroker)
		require.NoError(t, err)

		actor, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, actor.ID())
		assert.Equal(t, user.RoleBroker, actor.Role())
		assert.False(t, actor.IsAdmin())
	})

	t.Run("error: nil user id", func(t *testing.T) {
		token := signClaims(t, jwt.Claims{UserID: uuid.Nil, Role: "admin"})

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("error: unknown role", func(t *testing.T) {
		token := signClaims(t, jwt.Claims{UserID: uuid.New(), Role: "superuser"})

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("error: expired", func(t *testing.T) {
		token, err := jwt.NewService(secret, -time.Minute).GenerateToken(uuid.New(), user.RoleAdmin)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}
