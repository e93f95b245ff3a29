package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type IdentityChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewIdentityChecker(ttl time.Duration, redisClient *redis.Client) *IdentityChecker {
	return &IdentityChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (c *IdentityChecker) Identify(ctx context.Context, token string) (string, bool, error) {
	cmd := c.redisClient.HMGet(ctx, tokenKeyPrefix+token, fieldUserID, fieldCreatedAt)
	if err := cmd.Err(); err != nil {
		return "", false, err
	}

	values := cmd.Val()
	if len(values) != 2 || values[0] == nil || values[1] == nil {
		return "", false, nil
	}

	userID, _ := values[0].(string)
	createdAtStr, _ := values[1].(string)
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return "", false, fmt.Errorf("token created_at: %w", err)
	}

	if c.now().Sub(time.Unix(createdAtUnix, 0)) > c.ttl || userID == "" {
		return "", false, nil
	}

	return userID, true, nil
}
