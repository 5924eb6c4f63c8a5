package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/dto"
	"github.com/prperemyshlev/donor-service/internal/repository"
	"github.com/prperemyshlev/donor-service/internal/utils"
)

// userService implements UserService interface
type userService struct {
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	metrics      *Metrics
	logger       *zap.Logger
	bcryptCost   int
	queryTimeout time.Duration
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	metrics *Metrics,
	logger *zap.Logger,
	bcryptCost int,
	queryTimeout time.Duration,
) UserService {
	return &userService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		metrics:      metrics,
		logger:       logger,
		bcryptCost:   bcryptCost,
		queryTimeout: queryTimeout,
	}
}

// Register creates an account and its profile atomically
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	bloodType := strings.TrimSpace(req.BloodType)
	location := strings.TrimSpace(req.Location)

	var issues []domain.FieldIssue
	for _, f := range []struct{ field, label, value string }{
		{"name", "Name", name},
		{"bloodType", "Blood type", bloodType},
		{"location", "Location", location},
	} {
		if f.value == "" {
			issues = append(issues, domain.FieldIssue{Field: f.field, Message: f.label + " is required!"})
		}
	}
	if len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        utils.SanitizeEmail(req.Email),
		PasswordHash: passwordHash,
		BloodType:    bloodType,
		Location:     location,
		Role:         domain.RoleUser,
	}
	if req.Availability != nil {
		user.Availability = *req.Availability
	}

	profile := &domain.Profile{
		Bio:              req.Bio,
		Age:              req.Age,
		LastDonationDate: req.LastDonationDate,
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	if err := s.userRepo.CreateWithProfile(storeCtx, user, profile); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.metrics.registered(ctx)
	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return &dto.RegisterResponse{
		Data:        user.Summary(),
		UserProfile: profile,
	}, nil
}

// ListDonors returns one page of the donor directory
func (s *userService) ListDonors(ctx context.Context, filter domain.DonorFilter, opts domain.PageOptions) (*domain.DonorPage, error) {
	opts = opts.Normalize()

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	donors, total, err := s.userRepo.ListDonors(storeCtx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &domain.DonorPage{
		Meta: domain.PageMeta{Page: opts.Page, Limit: opts.Limit, Total: total},
		Data: donors,
	}, nil
}

// GetMyProfile returns the caller's account with its profile
func (s *userService) GetMyProfile(ctx context.Context, claims *domain.TokenClaims) (*domain.UserWithProfile, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	return s.userRepo.GetWithProfile(storeCtx, claims.ID)
}

// UpdateMyProfile patches the caller's profile
func (s *userService) UpdateMyProfile(ctx context.Context, claims *domain.TokenClaims, req *dto.UpdateProfileRequest) (*domain.Profile, error) {
	patch := domain.ProfilePatch{
		Bio:              req.Bio,
		Age:              req.Age,
		LastDonationDate: req.LastDonationDate,
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	if patch.IsEmpty() {
		return s.profileRepo.GetByUserID(storeCtx, claims.ID)
	}

	profile, err := s.profileRepo.UpdateByUserID(storeCtx, claims.ID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", zap.String("user_id", claims.ID))
	return profile, nil
}
