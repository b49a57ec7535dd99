package members

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultOTPTTL = 10 * time.Minute
	OTPLength     = 6

	otpKeyPrefix = "memberhub-email-otp"
)

var consumeOTPScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OTPStore keeps email change codes in redis, one per member and target email.
type OTPStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOTPStore(rdb *redis.Client, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &OTPStore{
		rdb: rdb,
		ttl: ttl,
	}
}

func otpKey(memberID int64, email string) string {
	return fmt.Sprintf("%s||%d||%s", otpKeyPrefix, memberID, strings.ToLower(email))
}

func (s *OTPStore) Save(ctx context.Context, memberID int64, email, code string) error {
	if err := s.rdb.Set(ctx, otpKey(memberID, email), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	return nil
}

// Consume checks the code and deletes it on match. A code can be used once.
func (s *OTPStore) Consume(ctx context.Context, memberID int64, email, code string) error {
	key := otpKey(memberID, email)
	stored, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidOTP
	}
	if err != nil {
		return fmt.Errorf("get otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(code))) != 1 {
		return ErrInvalidOTP
	}

	// only the caller whose delete still sees the code wins it
	deleted, err := consumeOTPScript.Run(ctx, s.rdb, []string{key}, stored).Int()
	if err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	if deleted != 1 {
		return ErrInvalidOTP
	}
	return nil
}
