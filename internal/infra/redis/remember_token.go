package redis

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const rememberTokenBytes = 32

// RememberTokenStore keeps remember-me tokens in Redis. Only a SHA-256 of the
// token is used as key so a dump of Redis cannot be replayed as cookies.
type RememberTokenStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRememberTokenStore(client redis.Cmdable, ttl time.Duration) *RememberTokenStore {
	return &RememberTokenStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RememberTokenStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, rememberTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(err, "generate remember token")
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	if err := s.client.Set(ctx, rememberKey(token), userID.String(), s.ttl).Err(); err != nil {
		return "", errs.Wrap(err, "store remember token")
	}
	return token, nil
}

// Consume deletes the token while reading it, so a token works once.
func (s *RememberTokenStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.client.GetDel(ctx, rememberKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, shared.ErrRememberTokenNotFound
		}
		return uuid.Nil, errs.Wrap(err, "consume remember token")
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errs.Mark(err, shared.ErrRememberTokenNotFound)
	}
	return userID, nil
}

func (s *RememberTokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, rememberKey(token)).Err(); err != nil {
		return errs.Wrap(err, "revoke remember token")
	}
	return nil
}

func rememberKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "remember:" + hex.EncodeToString(sum[:])
}
