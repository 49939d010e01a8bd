package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/logging"
)

const (
	sessionKeyPrefix = "frontend:session"
	guardKeyPrefix   = "frontend:submit"
)

// RedisStore keeps sessions in Redis as JSON with a sliding TTL
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a Redis backed session store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: client, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", sessionKeyPrefix, id)
}

// Load retrieves a session from Redis
func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}
	return decodeSession(data)
}

// Save writes a session to Redis and refreshes its TTL
func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return nil
}

// Delete removes a session from Redis
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}

// releaseScript deletes the guard key only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard is a SubmitGuard shared by every frontend instance. The lock
// expires after ttl so a crashed holder cannot block a session forever.
type RedisGuard struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisGuard creates a guard whose locks live at most ttl
func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{redis: client, ttl: ttl}
}

func guardKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", guardKeyPrefix, sessionID)
}

// Acquire takes the session's submit lock with SET NX
func (g *RedisGuard) Acquire(ctx context.Context, sessionID string) (func(), error) {
	token := uuid.NewString()
	ok, err := g.redis.SetNX(ctx, guardKey(sessionID), token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire submit guard: %w", err)
	}
	if !ok {
		return nil, ErrSubmissionInFlight
	}

	release := func() {
		// the request context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, g.redis, []string{guardKey(sessionID)}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			logging.Ctx(ctx).Warn().Err(err).Str("session_id", sessionID).Msg("Failed to release submit guard")
		}
	}
	return sync.OnceFunc(release), nil
}

// Held reports whether a submission is in flight for the session
func (g *RedisGuard) Held(ctx context.Context, sessionID string) bool {
	n, err := g.redis.Exists(ctx, guardKey(sessionID)).Result()
	return err == nil && n > 0
}
