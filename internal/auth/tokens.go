package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"diary-service/internal/shared/httpx"
)

// TokenStore holds single-use sign-in tokens between the mail being sent and
// the link being followed.
type TokenStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	// Redeem returns the user id and consumes the token; a second redemption
	// of the same token fails.
	Redeem(ctx context.Context, token string) (string, error)
}

const tokenTTL = 15 * time.Minute

type redisTokens struct {
	rdb *redis.Client
}

func NewRedisTokens(rdb *redis.Client) TokenStore {
	return &redisTokens{rdb: rdb}
}

// Only the SHA-256 digest of the token is stored, so a Redis dump does not
// yield usable sign-in links.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("magiclink:%s", hex.EncodeToString(sum[:]))
}

func (t *redisTokens) Issue(ctx context.Context, userID string) (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b[:])
	if err := t.rdb.Set(ctx, tokenKey(token), userID, tokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (t *redisTokens) Redeem(ctx context.Context, token string) (string, error) {
	uid, err := t.rdb.GetDel(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: link invalid or expired", httpx.ErrUnauthorized)
	}
	if err != nil {
		return "", err
	}
	return uid, nil
}
