package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/consultkit/consultkit/internal/shared/biztime"
)

// ErrStateNotFound is returned for unknown, expired or already used states.
var ErrStateNotFound = errors.New("state not found or expired")

// StateInfo stores state-related information for OAuth flow
type StateInfo struct {
	CodeVerifier string    `json:"code_verifier"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisStateStore provides Redis-based state storage for OAuth flows
type RedisStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStateStore creates a store whose keys live under prefix and expire after ttl.
func NewRedisStateStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Set stores state and code_verifier in Redis with TTL
func (s *RedisStateStore) Set(ctx context.Context, state string, codeVerifier string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if codeVerifier == "" {
		return errors.New("code_verifier cannot be empty")
	}

	data, err := json.Marshal(StateInfo{
		CodeVerifier: codeVerifier,
		CreatedAt:    biztime.NowUTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal state info: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(state), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store state in redis: %w", err)
	}
	return nil
}

// VerifyAndGet consumes state and returns its code_verifier. GETDEL makes
// each state usable exactly once.
func (s *RedisStateStore) VerifyAndGet(ctx context.Context, state string) (*StateInfo, error) {
	if state == "" {
		return nil, ErrStateNotFound
	}

	data, err := s.client.GetDel(ctx, s.buildKey(state)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to retrieve state from redis: %w", err)
	}

	var stateInfo StateInfo
	if err := json.Unmarshal([]byte(data), &stateInfo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state info: %w", err)
	}
	return &stateInfo, nil
}

func (s *RedisStateStore) buildKey(state string) string {
	return s.prefix + state
}
