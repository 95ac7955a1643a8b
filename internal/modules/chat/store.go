// README: Chat session store backed by Redis.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL bounds how long an abandoned conversation survives.
const sessionTTL = 30 * time.Minute

var ErrSessionNotFound = errors.New("chat session not found")

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// sessionKey namespaces sessions by guest so one guest's client-chosen id
// can never collide with another's.
func sessionKey(guestID, id string) string {
	return fmt.Sprintf("chat:session:%s:%s", guestID, id)
}

func (s *Store) Get(ctx context.Context, guestID, id string) (*Session, error) {
	raw, err := s.redis.Get(ctx, sessionKey(guestID, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now()
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(sess.GuestID, sess.ID), raw, sessionTTL).Err()
}
