package ports

import "context"

// SignUpResult reports the outcome of a registration attempt.
type SignUpResult struct {
	UserID               string
	ConfirmationRequired bool
	// Destination is the (masked) delivery target for the confirmation
	// code, when one was sent.
	Destination string
}

// TokenSet carries the tokens returned by a successful login.
type TokenSet struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	TokenType    string
	ExpiresIn    int32
}

// IdentityProvider abstracts the auth backend: Cognito in production, an
// in-memory provider for development.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password, name string) (*SignUpResult, error)
	Login(ctx context.Context, email, password string) (*TokenSet, error)
	Confirm(ctx context.Context, email, code string) error
}
