package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "session:revoked:"

// RevocationStore implements ports.SessionRevoker backed by Redis. A revoked
// session id is stored until the token it belongs to would have expired, so
// every instance behind a load balancer agrees on sign-outs.
// Key format: session:revoked:<session_id>
type RevocationStore struct {
	client redis.Cmdable
}

// NewRevocationStore wraps the given Redis client.
func NewRevocationStore(client redis.Cmdable) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke marks the session id as signed out for ttl.
func (s *RevocationStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(sessionID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the session id has been signed out.
func (s *RevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) key(sessionID string) string {
	return revokedPrefix + sessionID
}
