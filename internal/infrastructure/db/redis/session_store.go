package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

// SessionStore keeps live sessions in Redis so tokens can be revoked.
// Key format: session:<session_id>, value is the user id.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) ports.SessionStore {
	return &SessionStore{client: client}
}

// Save stores the session until its expiry. A session that is already
// expired is rejected.
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session store: session already expired")
	}
	if err := s.client.Set(ctx, key(sess.ID), sess.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

// Revoke deletes the session. Revoking an unknown session is not an error.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

func key(sessionID string) string {
	return "session:" + sessionID
}
