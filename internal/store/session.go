package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"argynix-connect/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "argynix:session:"

// SessionStore keeps console sessions in a KV with the session TTL.
type SessionStore struct {
	kv  KV
	ttl time.Duration
}

func NewSessionStore(kv KV, ttl time.Duration) *SessionStore {
	return &SessionStore{kv: kv, ttl: ttl}
}

func (s *SessionStore) TTL() time.Duration { return s.ttl }

// Save writes the session; it expires at ExpiresAt when set, else after the store TTL.
func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	ttl := s.ttl
	if !sess.ExpiresAt.IsZero() {
		ttl = time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			return fmt.Errorf("session %s already expired", sess.ID)
		}
	}
	return SetJSON(ctx, s.kv, sessionKeyPrefix+sess.ID, sess, ttl)
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	var sess domain.Session
	if err := GetJSON(ctx, s.kv, sessionKeyPrefix+id, &sess); err != nil {
		if errors.Is(err, ErrMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, sessionKeyPrefix+id)
}
