package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStateClient struct {
	keys   map[string]time.Duration
	err    error
	closed bool
}

func (f *fakeStateClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if f.keys == nil {
		f.keys = make(map[string]time.Duration)
	}
	if _, exists := f.keys[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeStateClient) Close() error {
	f.closed = true
	return nil
}

func TestOAuthStateRepositoryWithoutRedisAlwaysAccepts(t *testing.T) {
	repo := NewOAuthStateRepository(nil)

	for i := 0; i < 2; i++ {
		ok, err := repo.Consume(context.Background(), "state-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.NoError(t, repo.Close())
}

func TestOAuthStateRepositoryRejectsReplay(t *testing.T) {
	client := &fakeStateClient{}
	repo := &OAuthStateRepository{client: client}

	ok, err := repo.Consume(context.Background(), "state-1", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5*time.Minute, client.keys[oauthStatePrefix+"state-1"])

	ok, err = repo.Consume(context.Background(), "state-1", 5*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Consume(context.Background(), "state-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Close())
	assert.True(t, client.closed)
}

func TestOAuthStateRepositoryPropagatesRedisErrors(t *testing.T) {
	repo := &OAuthStateRepository{client: &fakeStateClient{err: errors.New("connection refused")}}

	ok, err := repo.Consume(context.Background(), "state-1", time.Minute)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "state-1")
}
