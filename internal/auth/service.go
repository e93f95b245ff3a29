package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/pkg"
)

const (
	DefaultTTL     = 24 * 30 * time.Hour
	tokenKeyPrefix = "liftlog-token||"
	tokensSetKey   = "liftlog-tokens"

	fieldUserID    = "user_id"
	fieldCreatedAt = "created_at"
	tokenLength    = 35
)

// Service issues and revokes the API tokens that map a client to a user id.
// Login itself is handled by the identity provider, tokens are minted after it.
type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (s *Service) Issue(ctx context.Context, userID string, createdAt time.Time) (string, error) {
	if userID == "" {
		return "", errors.New("user id empty")
	}

	token, err := s.RandStringFunc(tokenLength)
	if err != nil {
		return "", err
	}

	tokenKey := tokenKeyPrefix + token
	if err := s.redisClient.HSet(ctx, tokenKey, fieldUserID, userID, fieldCreatedAt, createdAt.Unix()).Err(); err != nil {
		return "", err
	}
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Revoke reports whether the token existed.
func (s *Service) Revoke(ctx context.Context, token string) (bool, error) {
	cmdDel := s.redisClient.Del(ctx, tokenKeyPrefix+token)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}
	return cmdDel.Val() > 0, nil
}

// ScanAndClean will run through all tokens, check the TTL, and remove the old ones
func (s *Service) ScanAndClean(ctx context.Context) {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("auth service, scan and clean, get tokens: %s", err)
		return
	}

	tokens := cmd.Val()
	if len(tokens) == 0 {
		log.Debugln("auth service, scan and clean abort, no tokens")
		return
	}

	log.Infof("auth service, scan and clean [%d tokens] start ...", len(tokens))
	var toRemove []string
	for _, token := range tokens {
		createdAtCmd := s.redisClient.HGet(ctx, tokenKeyPrefix+token, fieldCreatedAt)
		if err := createdAtCmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(createdAtCmd.Val(), 10, 64)
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		if time.Since(time.Unix(createdAtUnix, 0)) > s.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if _, err := s.Revoke(ctx, token); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
		}
	}
	log.Infof("auth service, scan and clean done, %d tokens removed", len(toRemove))
}
