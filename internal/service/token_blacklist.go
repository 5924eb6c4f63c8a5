package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prperemyshlev/donor-service/pkg/database"
)

// TokenBlacklistService keeps revoked refresh token ids in Redis
type TokenBlacklistService struct {
	redis *database.Redis
}

var _ TokenRevocationStore = (*TokenBlacklistService)(nil)

// NewTokenBlacklistService creates a new token blacklist service
func NewTokenBlacklistService(redis *database.Redis) *TokenBlacklistService {
	return &TokenBlacklistService{redis: redis}
}

func blacklistKey(tokenID string) string {
	return fmt.Sprintf("blacklist:refresh:%s", tokenID)
}

// Revoke blacklists a token id for ttl with SET NX. It returns false when the id
// was already blacklisted or ttl is non-positive (the token has expired anyway).
func (s *TokenBlacklistService) Revoke(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	claimed, err := s.redis.Client.SetNX(ctx, blacklistKey(tokenID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return claimed, nil
}
