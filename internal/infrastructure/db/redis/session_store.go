package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

const sessionKeyPrefix = "session:"

const defaultSessionTTL = 30 * time.Minute

// SessionStore maps opaque tokens to caller identities in Redis.
// Key format: session:<token> -> JSON-encoded domain.Identity, expiring after
// the session TTL. The TTL is refreshed on every successful load, giving a
// sliding expiry window; Redis eviction makes expired sessions
// indistinguishable from ones that never existed.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// A non-positive ttl falls back to the 30-minute default.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, identity domain.Identity) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *SessionStore) Load(ctx context.Context, token string) (*domain.Identity, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	// Sliding window: activity keeps the session alive.
	_ = s.client.Expire(ctx, s.key(token), s.ttl).Err()

	return &identity, nil
}

func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	// DEL of a missing key is a no-op, which is exactly the idempotency
	// logout needs.
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return sessionKeyPrefix + token
}

// newToken returns 32 bytes of hex-encoded randomness. The token is opaque:
// it carries no claims and is meaningless without the store.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
