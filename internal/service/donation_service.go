package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/dto"
	"github.com/prperemyshlev/donor-service/internal/events"
	"github.com/prperemyshlev/donor-service/internal/repository"
)

const publishTimeout = 2 * time.Second

// donationService implements DonationService interface
type donationService struct {
	userRepo     repository.UserRepository
	requestRepo  repository.DonationRequestRepository
	publisher    events.Publisher
	metrics      *Metrics
	logger       *zap.Logger
	queryTimeout time.Duration
}

// NewDonationService creates a new donation service
func NewDonationService(
	userRepo repository.UserRepository,
	requestRepo repository.DonationRequestRepository,
	publisher events.Publisher,
	metrics *Metrics,
	logger *zap.Logger,
	queryTimeout time.Duration,
) DonationService {
	return &donationService{
		userRepo:     userRepo,
		requestRepo:  requestRepo,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// CreateRequest files a request from the caller to a donor
func (s *donationService) CreateRequest(ctx context.Context, claims *domain.TokenClaims, req *dto.CreateDonationRequest) (*domain.DonationRequest, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	donor, err := s.userRepo.GetWithProfile(storeCtx, req.DonorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("donor %s: %w", req.DonorID, domain.ErrNotFound)
		}
		return nil, err
	}

	request := &domain.DonationRequest{
		DonorID:         donor.ID,
		RequesterID:     claims.ID,
		PhoneNumber:     req.PhoneNumber,
		DateOfDonation:  req.DateOfDonation,
		HospitalName:    req.HospitalName,
		HospitalAddress: req.HospitalAddress,
		Reason:          req.Reason,
		RequestStatus:   domain.RequestStatusPending,
	}

	if err := s.requestRepo.Create(storeCtx, request); err != nil {
		return nil, err
	}
	request.Donor = donor

	s.metrics.requestCreated(ctx)
	s.logger.Info("donation request created",
		zap.String("request_id", request.ID),
		zap.String("donor_id", request.DonorID),
		zap.String("requester_id", request.RequesterID),
	)
	s.publish(ctx, events.NewDonationRequestEvent(events.DonationRequestCreated, request, claims.ID))

	return request, nil
}

// ListRequests returns every request with its requester
func (s *donationService) ListRequests(ctx context.Context) ([]domain.DonationRequest, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	return s.requestRepo.ListWithRequester(storeCtx)
}

// UpdateRequestStatus overwrites the request status with the given value
func (s *donationService) UpdateRequestStatus(ctx context.Context, claims *domain.TokenClaims, requestID, status string) (*domain.DonationRequest, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, domain.NewValidationError("requestStatus", "Request status is required!")
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	current, err := s.requestRepo.GetByID(storeCtx, requestID)
	if err != nil {
		return nil, err
	}
	if current.RequestStatus == status {
		s.logger.Debug("donation request status unchanged",
			zap.String("request_id", current.ID),
			zap.String("status", status),
		)
		return current, nil
	}

	request, err := s.requestRepo.UpdateStatus(storeCtx, requestID, status)
	if err != nil {
		return nil, err
	}

	s.metrics.statusUpdated(ctx, status)
	s.logger.Info("donation request status updated",
		zap.String("request_id", request.ID),
		zap.String("status", status),
		zap.String("actor_id", claims.ID),
	)
	s.publish(ctx, events.NewDonationRequestEvent(events.DonationRequestStatusUpdated, request, claims.ID))

	return request, nil
}

// publish delivers an event best-effort; failures are only logged
func (s *donationService) publish(ctx context.Context, event events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", event.Type), zap.Error(err))
	}
}
