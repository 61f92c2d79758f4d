package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const oauthStatePrefix = "orbit:oauth:state:"

// stateClient is the subset of the Redis client the repository needs.
type stateClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Close() error
}

// OAuthStateRepository remembers consumed OAuth state ids in Redis so a
// callback cannot be replayed within the state's lifetime.
type OAuthStateRepository struct {
	client stateClient
}

// NewOAuthStateRepository constructs the repository. A nil client disables replay tracking.
func NewOAuthStateRepository(client *redis.Client) *OAuthStateRepository {
	if client == nil {
		return &OAuthStateRepository{}
	}
	return &OAuthStateRepository{client: client}
}

// Consume marks the state id as used. It returns false when the id was already consumed.
func (r *OAuthStateRepository) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if r == nil || r.client == nil {
		return true, nil
	}
	ok, err := r.client.SetNX(ctx, oauthStatePrefix+id, time.Now().UTC().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx state %s: %w", id, err)
	}
	return ok, nil
}

// Close releases the underlying Redis connection if present.
func (r *OAuthStateRepository) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
