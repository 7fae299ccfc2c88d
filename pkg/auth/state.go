package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// StateLength is the length of the generated nonce in bytes (32 bytes = 64 hex chars)
	StateLength = 32
	// StateTTL bounds one browser round trip to the provider
	StateTTL = 10 * time.Minute

	stateSubject = "oauth_state"
)

var ErrInvalidStateToken = errors.New("invalid state token")

// NewState creates a cryptographically secure random nonce
func NewState() (string, error) {
	bytes := make([]byte, StateLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// StateSigner seals a state nonce into an HS256 token stored in a cookie,
// binding the nonce to the browser that started the flow.
type StateSigner struct {
	key []byte
}

func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{key: []byte(secret)}
}

// Sign returns the signed token and its expiry.
func (s *StateSigner) Sign(state string, ttl time.Duration) (string, time.Time, error) {
	if len(s.key) == 0 {
		return "", time.Time{}, errors.New("state signing key is empty")
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		ID:        state,
		Subject:   stateSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign state: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the sealed nonce.
func (s *StateSigner) Verify(token string) (string, error) {
	if token == "" || len(s.key) == 0 {
		return "", ErrInvalidStateToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(stateSubject),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidStateToken, err)
	}
	if claims.ID == "" {
		return "", ErrInvalidStateToken
	}
	return claims.ID, nil
}
