package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hosteria-web/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "oauth:state:"

type oauthStateRepository struct {
	client *goredis.Client
}

// NewOAuthStateRepository stores state nonces as expiring keys.
func NewOAuthStateRepository(client *goredis.Client) domain.OAuthStateRepository {
	return &oauthStateRepository{client: client}
}

func (r *oauthStateRepository) Save(ctx context.Context, state string, ttl time.Duration) error {
	if err := r.client.Set(ctx, stateKeyPrefix+state, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis: save oauth state: %w", err)
	}
	return nil
}

// Consume uses GETDEL so two callbacks racing on one nonce cannot both win.
func (r *oauthStateRepository) Consume(ctx context.Context, state string) (bool, error) {
	err := r.client.GetDel(ctx, stateKeyPrefix+state).Err()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis: consume oauth state: %w", err)
	}
	return true, nil
}
