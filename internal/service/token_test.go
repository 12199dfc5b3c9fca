package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateTokenValid(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, 42)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, 42, claims.RaterID)
}

func TestValidateTokenInvalid(t *testing.T) {
	svc := NewTokenService("test-secret")

	claims, err := svc.ValidateToken("invalid.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.GenerateToken(uuid.New(), 1)
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
