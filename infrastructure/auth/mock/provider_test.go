package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/pkg/auth"
	apperrors "library-backend/pkg/errors"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()

	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     "test-secret",
		Issuer:        "library-backend",
		Audience:      []string{"library-app"},
	})
	require.NoError(t, err)

	return NewProvider(generator)
}

func TestSignUpAutoConfirmsAndLogsIn(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	result, err := provider.SignUp(ctx, "reader@example.com", "Passw0rd!", "Reader One")
	require.NoError(t, err)
	assert.NotEmpty(t, result.UserID)
	assert.False(t, result.ConfirmationRequired)
	assert.Equal(t, "reader@example.com", result.Destination)

	tokens, err := provider.Login(ctx, "reader@example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, tokens.AccessToken, tokens.IDToken)
	assert.Equal(t, tokens.AccessToken, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Greater(t, tokens.ExpiresIn, int32(0))
}

func TestConfirmAcceptsAnyCode(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	_, err := provider.SignUp(ctx, "reader@example.com", "Passw0rd!", "Reader")
	require.NoError(t, err)

	assert.NoError(t, provider.Confirm(ctx, "reader@example.com", "123456"))
	assert.NoError(t, provider.Confirm(ctx, "reader@example.com", "000000"))
}

func TestConfirmEmptyCode(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	_, err := provider.SignUp(ctx, "reader@example.com", "Passw0rd!", "Reader")
	require.NoError(t, err)

	err = provider.Confirm(ctx, "reader@example.com", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	_, err := provider.SignUp(ctx, "dup@example.com", "Passw0rd!", "First")
	require.NoError(t, err)

	_, err = provider.SignUp(ctx, "DUP@example.com", "Passw0rd!", "Second")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestSignUpWeakPassword(t *testing.T) {
	provider := newTestProvider(t)

	_, err := provider.SignUp(context.Background(), "weak@example.com", "short", "Weak")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	_, err := provider.SignUp(ctx, "user@example.com", "Passw0rd!", "User")
	require.NoError(t, err)

	_, err = provider.Login(ctx, "user@example.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestLoginUnknownUser(t *testing.T) {
	provider := newTestProvider(t)

	_, err := provider.Login(context.Background(), "nobody@example.com", "Passw0rd!")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestConfirmUnknownUser(t *testing.T) {
	provider := newTestProvider(t)

	err := provider.Confirm(context.Background(), "nobody@example.com", "123456")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
