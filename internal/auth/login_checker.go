package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// Session resolves a token. Unknown and expired tokens yield a nil session.
func (lc *LoginChecker) Session(ctx context.Context, token string) (*Session, error) {
	sessionJson, err := lc.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal([]byte(sessionJson), session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	if time.Since(session.CreatedAt) > lc.ttl {
		return nil, nil
	}

	session.Token = token
	return session, nil
}

func (lc *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	session, err := lc.Session(ctx, token)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}
