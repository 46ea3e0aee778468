package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gridiron-labs/trivia-exam/internal/quiz"
)

// NewRedisClient configures a Redis client from the supplied URL and verifies
// the connection.
func NewRedisClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url must not be empty")
	}

	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(options)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	return client, nil
}

// RedisStore keeps graded results in Redis with a per-entry TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore builds a redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "session_redis_store").Logger(),
	}
}

func resultKey(sessionID string) string {
	return "exam:result:" + sessionID
}

// SaveResult stores the result under the session key, replacing any previous
// one and resetting the expiry.
func (s *RedisStore) SaveResult(ctx context.Context, sessionID string, result quiz.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if err := s.client.Set(ctx, resultKey(sessionID), payload, s.ttl).Err(); err != nil {
		s.logger.Error().Err(err).Msg("failed to store result")
		return fmt.Errorf("failed to store result: %w", err)
	}

	return nil
}

// GetResult loads the session's result, reporting ErrResultNotFound when the
// key is absent or expired.
func (s *RedisStore) GetResult(ctx context.Context, sessionID string) (quiz.Result, error) {
	payload, err := s.client.Get(ctx, resultKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return quiz.Result{}, ErrResultNotFound
		}
		s.logger.Error().Err(err).Msg("failed to read result")
		return quiz.Result{}, fmt.Errorf("failed to read result: %w", err)
	}

	var result quiz.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return quiz.Result{}, fmt.Errorf("failed to decode stored result: %w", err)
	}

	return result, nil
}

// ClearResult removes the session's result. Clearing an absent result is not
// an error.
func (s *RedisStore) ClearResult(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, resultKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear result: %w", err)
	}
	return nil
}
