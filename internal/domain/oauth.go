package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const ProviderGitHub = "github"

var (
	ErrOAuthNotConfigured = errors.New("oauth client credentials are not configured")
	ErrInvalidState       = errors.New("oauth state mismatch")
)

// ProviderError is returned when the token endpoint answers without an access token.
// Payload keeps the raw body for diagnostics.
type ProviderError struct {
	Payload []byte
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider response has no access_token: %s", e.Payload)
}

// AuthorizationRequest is the outcome of starting the authorization code flow.
// StateCookie binds State to the browser that started the flow.
type AuthorizationRequest struct {
	URL         string
	State       string
	StateCookie string
	ExpiresAt   time.Time
}

// TokenResult is relayed once to the CMS opener window and never stored.
type TokenResult struct {
	Token    string `json:"token"`
	Provider string `json:"provider"`
}

type OAuthStateRepository interface {
	// Save stores a state nonce for ttl.
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume atomically deletes the nonce, reporting whether it was present and unexpired.
	Consume(ctx context.Context, state string) (bool, error)
}

type OAuthProvider interface {
	Name() string
	AuthURL(state, redirectURI string) string
	ExchangeCode(ctx context.Context, code string) (*TokenResult, error)
}

type OAuthUsecase interface {
	Configured() bool
	BeginAuthorization(ctx context.Context, redirectURI string) (*AuthorizationRequest, error)
	CompleteAuthorization(ctx context.Context, code, state, stateCookie string) (*TokenResult, error)
}
