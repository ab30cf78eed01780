// Package mock provides an in-memory identity provider for local
// development and tests.
package mock

import (
	"context"
	"strings"
	"sync"

	"library-backend/application/ports"
	"library-backend/pkg/auth"
	apperrors "library-backend/pkg/errors"
	"library-backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	id           string
	email        string
	name         string
	passwordHash []byte
	confirmed    bool
}

// Provider implements ports.IdentityProvider with in-memory users.
// Sign-ups are auto-verified and Confirm accepts any non-empty code.
type Provider struct {
	generator *auth.JWTGenerator
	mu        sync.RWMutex
	users     map[string]*user
}

// NewProvider creates a mock identity provider issuing tokens from generator.
func NewProvider(generator *auth.JWTGenerator) *Provider {
	return &Provider{
		generator: generator,
		users:     make(map[string]*user),
	}
}

// SignUp registers a new in-memory user.
func (p *Provider) SignUp(ctx context.Context, email, password, name string) (*ports.SignUpResult, error) {
	if err := utils.ValidatePassword(password); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password")
	}

	key := strings.ToLower(email)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[key]; exists {
		return nil, apperrors.NewConflictError("an account with this email already exists")
	}

	u := &user{
		id:           uuid.New().String(),
		email:        email,
		name:         name,
		passwordHash: hash,
		confirmed:    true,
	}
	p.users[key] = u

	return &ports.SignUpResult{
		UserID:               u.id,
		ConfirmationRequired: false,
		Destination:          email,
	}, nil
}

// Login authenticates a confirmed user and issues a token.
func (p *Provider) Login(ctx context.Context, email, password string) (*ports.TokenSet, error) {
	p.mu.RLock()
	u, exists := p.users[strings.ToLower(email)]
	p.mu.RUnlock()

	if !exists {
		return nil, apperrors.NewNotFoundError("user")
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if !u.confirmed {
		return nil, apperrors.NewUnauthorizedError("account not confirmed").WithCode("USER_NOT_CONFIRMED")
	}

	token, err := p.generator.GenerateToken(u.id, u.email, u.name)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token")
	}

	return &ports.TokenSet{
		AccessToken:  token,
		IDToken:      token,
		RefreshToken: token,
		TokenType:    "Bearer",
		ExpiresIn:    int32(p.generator.Expiry().Seconds()),
	}, nil
}

// Confirm marks the user as confirmed. Any non-empty code is accepted,
// matching how local development treats verification.
func (p *Provider) Confirm(ctx context.Context, email, code string) error {
	if code == "" {
		return apperrors.NewValidationError("confirmation code is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	u, exists := p.users[strings.ToLower(email)]
	if !exists {
		return apperrors.NewNotFoundError("user")
	}
	u.confirmed = true
	return nil
}
