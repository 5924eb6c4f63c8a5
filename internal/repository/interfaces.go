package repository

import (
	"context"

	"github.com/prperemyshlev/donor-service/internal/domain"
)

// UserRepository defines methods for account operations
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetWithProfile(ctx context.Context, id string) (*domain.UserWithProfile, error)
	ListDonors(ctx context.Context, filter domain.DonorFilter, opts domain.PageOptions) ([]domain.UserWithProfile, int64, error)
}

// ProfileRepository defines methods for profile operations
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateByUserID(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error)
}

// DonationRequestRepository defines methods for donation request operations
type DonationRequestRepository interface {
	Create(ctx context.Context, req *domain.DonationRequest) error
	GetByID(ctx context.Context, id string) (*domain.DonationRequest, error)
	ListWithRequester(ctx context.Context) ([]domain.DonationRequest, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.DonationRequest, error)
}
