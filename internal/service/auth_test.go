package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbite/fitbite-backend/internal/testhelpers"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	t.Run("should register and return a valid token", func(t *testing.T) {
		token, err := svc.Register(ctx, "tester", "tester@example.com", "password123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "tester", claims.Username)
	})

	t.Run("should reject a duplicate registration", func(t *testing.T) {
		_, err := svc.Register(ctx, "tester", "tester@example.com", "password123")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		_, err := svc.Register(ctx, "", "someone@example.com", "password123")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should log in with correct credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, "tester@example.com", "password123")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "tester", claims.Username)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "tester@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("should reject an unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewAuthService(db, "test-secret")

	t.Run("should reject garbage", func(t *testing.T) {
		claims, err := svc.ValidateToken("invalid.token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		other := NewAuthService(db, "other-secret")
		token, err := other.Register(context.Background(), "alice", "alice@example.com", "password123")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
