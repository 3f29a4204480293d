package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"diary-service/internal/shared/httpx"
)

// SessionStore tracks live sessions server-side so that logout actually
// invalidates the token instead of waiting for JWT expiry.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	UserID(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

const sessionTTL = 24 * time.Hour

type redisSessions struct {
	rdb *redis.Client
}

func NewRedisSessions(rdb *redis.Client) SessionStore {
	return &redisSessions{rdb: rdb}
}

func sessionKey(sid string) string { return fmt.Sprintf("session:%s", sid) }

func (s *redisSessions) Create(ctx context.Context, userID string) (string, error) {
	sid := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKey(sid), userID, sessionTTL).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *redisSessions) UserID(ctx context.Context, sessionID string) (string, error) {
	uid, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", httpx.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	return uid, nil
}

// Delete is idempotent: removing an absent session is not an error.
func (s *redisSessions) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
