package memory

import (
	"context"
	"sync"
	"time"

	"hosteria-web/internal/domain"
)

// oauthStateRepository is the single-process fallback used when Redis is not configured.
type oauthStateRepository struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

func NewOAuthStateRepository() domain.OAuthStateRepository {
	return newOAuthStateRepository(time.Now)
}

func newOAuthStateRepository(now func() time.Time) *oauthStateRepository {
	return &oauthStateRepository{
		states: make(map[string]time.Time),
		now:    now,
	}
}

func (r *oauthStateRepository) Save(_ context.Context, state string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	// Abandoned flows never reach Consume; sweep them here
	for s, expiresAt := range r.states {
		if !now.Before(expiresAt) {
			delete(r.states, s)
		}
	}
	r.states[state] = now.Add(ttl)
	return nil
}

func (r *oauthStateRepository) Consume(_ context.Context, state string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiresAt, ok := r.states[state]
	if !ok {
		return false, nil
	}
	delete(r.states, state)
	return r.now().Before(expiresAt), nil
}
