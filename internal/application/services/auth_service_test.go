package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/ports"
)

func TestRegister_CreatesAccountAndToken(t *testing.T) {
	f := newFixture()

	response, err := f.auth.Register(context.Background(), ports.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, response.AccessToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Empty(t, response.User.PasswordHash, "hash must not leak in responses")

	claims, err := f.auth.ValidateToken(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	f := newFixture()

	_, err := f.auth.Register(context.Background(), ports.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = f.auth.Register(context.Background(), ports.RegisterRequest{
		Name: "Impostor", Email: "alice@example.com", Password: "different456",
	})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestRegister_ValidatesInput(t *testing.T) {
	f := newFixture()

	_, err := f.auth.Register(context.Background(), ports.RegisterRequest{
		Name: "Alice", Email: "not-an-email", Password: "password123",
	})
	assert.ErrorIs(t, err, entities.ErrValidation)

	_, err = f.auth.Register(context.Background(), ports.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "short",
	})
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestLogin_VerifiesCredentials(t *testing.T) {
	f := newFixture()

	_, err := f.auth.Register(context.Background(), ports.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	require.NoError(t, err)

	response, err := f.auth.Login(context.Background(), ports.LoginRequest{
		Email: "alice@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)

	// Wrong password and unknown email fail identically.
	_, err = f.auth.Login(context.Background(), ports.LoginRequest{
		Email: "alice@example.com", Password: "wrong-password",
	})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	_, err = f.auth.Login(context.Background(), ports.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	f := newFixture()

	_, err := f.auth.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, entities.ErrUnauthenticated)
}
