package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/dto"
	"github.com/prperemyshlev/donor-service/internal/repository"
	"github.com/prperemyshlev/donor-service/internal/utils"
)

// authService implements AuthService interface
type authService struct {
	userRepo     repository.UserRepository
	tokens       TokenManager
	revocations  TokenRevocationStore
	metrics      *Metrics
	logger       *zap.Logger
	bcryptCost   int
	queryTimeout time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenManager,
	revocations TokenRevocationStore,
	metrics *Metrics,
	logger *zap.Logger,
	bcryptCost int,
	queryTimeout time.Duration,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokens:       tokens,
		revocations:  revocations,
		metrics:      metrics,
		logger:       logger,
		bcryptCost:   bcryptCost,
		queryTimeout: queryTimeout,
	}
}

// Login verifies the credentials and issues an access/refresh token pair.
// An unknown email and a wrong password fail the same way.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(storeCtx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.ComparePasswordDecoy(req.Password, s.bcryptCost)
			s.metrics.login(ctx, "unknown_email")
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.metrics.login(ctx, "wrong_password")
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.tokens.GenerateTokenPair(domain.IdentityOf(user))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.metrics.login(ctx, "success")
	s.logger.Info("user logged in", zap.String("user_id", user.ID))

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair and revokes the old one
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(storeCtx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// revoking is the claim on the token: only one concurrent refresh wins it
	claimed, err := s.revocations.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt))
	if err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !claimed {
		return nil, fmt.Errorf("%w: refresh token has been revoked", domain.ErrUnauthenticated)
	}

	tokens, err := s.tokens.GenerateTokenPair(domain.IdentityOf(user))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return tokens, nil
}

// Logout revokes the refresh token. Invalid or expired tokens are ignored.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Debug("logout with unusable refresh token", zap.Error(err))
		return nil
	}

	if _, err := s.revocations.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.logger.Info("user logged out", zap.String("user_id", claims.ID))
	return nil
}

// RefreshTokenTTL returns the lifetime of issued refresh tokens
func (s *authService) RefreshTokenTTL() time.Duration {
	return s.tokens.RefreshTokenExpiry()
}
