package service

import (
	"context"
	"time"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/dto"
)

// LoginResult holds the authenticated account and its freshly issued tokens
type LoginResult struct {
	User   *domain.User
	Tokens *domain.TokenPair
}

// AuthService defines methods for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshTokenTTL() time.Duration
}

// UserService defines methods for account, profile and directory operations
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	ListDonors(ctx context.Context, filter domain.DonorFilter, opts domain.PageOptions) (*domain.DonorPage, error)
	GetMyProfile(ctx context.Context, claims *domain.TokenClaims) (*domain.UserWithProfile, error)
	UpdateMyProfile(ctx context.Context, claims *domain.TokenClaims, req *dto.UpdateProfileRequest) (*domain.Profile, error)
}

// DonationService defines methods for the donation request workflow
type DonationService interface {
	CreateRequest(ctx context.Context, claims *domain.TokenClaims, req *dto.CreateDonationRequest) (*domain.DonationRequest, error)
	ListRequests(ctx context.Context) ([]domain.DonationRequest, error)
	UpdateRequestStatus(ctx context.Context, claims *domain.TokenClaims, requestID, status string) (*domain.DonationRequest, error)
}

// TokenRevocationStore remembers revoked refresh tokens until they expire.
// Revoke reports whether this call revoked the token; at most one caller gets true per id.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

// TokenManager issues and verifies tokens
type TokenManager interface {
	GenerateTokenPair(identity domain.Identity) (*domain.TokenPair, error)
	ValidateRefreshToken(token string) (*domain.TokenClaims, error)
	RefreshTokenExpiry() time.Duration
}
