package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/donor-service/internal/domain"
)

// ErrInvalidToken is returned for any token that fails signature, expiry or shape checks
var ErrInvalidToken = errors.New("invalid token")

type identityClaims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies access and refresh tokens with separate secrets
type JWTManager struct {
	accessSecret       []byte
	refreshSecret      []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	now                func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(accessSecret, refreshSecret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		accessSecret:       []byte(accessSecret),
		refreshSecret:      []byte(refreshSecret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
		now:                time.Now,
	}
}

// WithClock overrides the time source, used by tests
func (j *JWTManager) WithClock(now func() time.Time) *JWTManager {
	j.now = now
	return j
}

// GenerateAccessToken issues a short-lived access token
func (j *JWTManager) GenerateAccessToken(identity domain.Identity) (string, error) {
	token, err := j.sign(identity, j.accessSecret, j.accessTokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// GenerateRefreshToken issues a long-lived refresh token
func (j *JWTManager) GenerateRefreshToken(identity domain.Identity) (string, error) {
	token, err := j.sign(identity, j.refreshSecret, j.refreshTokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, nil
}

// GenerateTokenPair issues both tokens for the same identity
func (j *JWTManager) GenerateTokenPair(identity domain.Identity) (*domain.TokenPair, error) {
	access, err := j.GenerateAccessToken(identity)
	if err != nil {
		return nil, err
	}
	refresh, err := j.GenerateRefreshToken(identity)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateAccessToken verifies an access token and returns its claims
func (j *JWTManager) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, j.accessSecret)
}

// ValidateRefreshToken verifies a refresh token and returns its claims
func (j *JWTManager) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, j.refreshSecret)
}

// RefreshTokenExpiry returns the configured refresh token lifetime
func (j *JWTManager) RefreshTokenExpiry() time.Duration {
	return j.refreshTokenExpiry
}

func (j *JWTManager) sign(identity domain.Identity, secret []byte, ttl time.Duration) (string, error) {
	now := j.now()
	claims := identityClaims{
		Name:  identity.Name,
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (j *JWTManager) verify(tokenString string, secret []byte) (*domain.TokenClaims, error) {
	var claims identityClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing subject or iat", ErrInvalidToken)
	}

	return &domain.TokenClaims{
		Identity: domain.Identity{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		},
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
