package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/dto"
	"github.com/prperemyshlev/donor-service/internal/service"
	"github.com/prperemyshlev/donor-service/internal/utils"
)

const (
	testAccessSecret  = "access-secret-that-is-at-least-32-characters!"
	testRefreshSecret = "refresh-secret-that-is-at-least-32-characters"
)

var testUser = domain.Identity{
	ID:    "7d1c2a4e-1111-4222-8333-444455556666",
	Name:  "Alice",
	Email: "alice@example.com",
	Role:  domain.RoleUser,
}

// Suite drives the HTTP layer over httptest with fake services
type Suite struct {
	suite.Suite
	jwt       *utils.JWTManager
	auth      *fakeAuthService
	users     *fakeUserService
	donations *fakeDonationService
	limiter   *fakeLimiter
	router    *gin.Engine
}

func (s *Suite) SetupTest() {
	gin.SetMode(gin.TestMode)
	SetupValidation()

	s.jwt = utils.NewJWTManager(testAccessSecret, testRefreshSecret, 15*time.Minute, 24*time.Hour)
	s.auth = &fakeAuthService{}
	s.users = &fakeUserService{}
	s.donations = &fakeDonationService{}
	s.limiter = &fakeLimiter{limit: 100}

	guard := utils.NewRoleGuard(s.jwt)
	logger := zap.NewNop()
	authHandler := NewAuthHandler(s.auth, false)
	userHandler := NewUserHandler(s.users)
	donationHandler := NewDonationHandler(s.donations)

	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.CustomRecovery(Recovery))
	router.NoRoute(NotFound)
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	limited := RateLimitMiddleware(s.limiter, logger, 3, time.Minute, IPBasedKey("auth"))
	requireUser := AuthMiddleware(guard, domain.RoleUser)

	api := router.Group("/api")
	api.POST("/login", limited, authHandler.Login)
	api.POST("/refresh-token", authHandler.Refresh)
	api.POST("/logout", authHandler.Logout)
	api.POST("/user/register", limited, userHandler.Register)
	api.GET("/donor-list", userHandler.ListDonors)
	api.GET("/my-profile", requireUser, userHandler.GetMyProfile)
	api.PUT("/my-profile", requireUser, userHandler.UpdateMyProfile)
	api.POST("/donation-request", requireUser, donationHandler.CreateRequest)
	api.GET("/donation-request", requireUser, donationHandler.ListRequests)
	api.POST("/donation-request/:requestId", requireUser, donationHandler.UpdateRequestStatus)
	api.GET("/admin-only", AuthMiddleware(guard, domain.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	s.router = router
}

func (s *Suite) token(identity domain.Identity) string {
	token, err := s.jwt.GenerateAccessToken(identity)
	s.Require().NoError(err)
	return token
}

func (s *Suite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *Suite) decodeError(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(false, body["success"])
	return body
}

func decode[T any](s *Suite, rec *httptest.ResponseRecorder) (T, dto.Response) {
	var envelope struct {
		dto.Response
		Data T `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.True(envelope.Success)
	s.Equal(rec.Code, envelope.StatusCode)
	return envelope.Data, envelope.Response
}

type fakeAuthService struct {
	loginErr   error
	refreshErr error
	gotRefresh string
	gotLogout  string
}

func (f *fakeAuthService) Login(_ context.Context, req *dto.LoginRequest) (*service.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &service.LoginResult{
		User:   &domain.User{ID: testUser.ID, Name: testUser.Name, Email: req.Email},
		Tokens: &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}, nil
}

func (f *fakeAuthService) RefreshToken(_ context.Context, token string) (*domain.TokenPair, error) {
	f.gotRefresh = token
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &domain.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	f.gotLogout = token
	return nil
}

func (f *fakeAuthService) RefreshTokenTTL() time.Duration { return time.Hour }

type fakeUserService struct {
	err          error
	gotRegister  *dto.RegisterRequest
	gotFilter    domain.DonorFilter
	gotOpts      domain.PageOptions
	gotClaims    *domain.TokenClaims
	gotPatch     *dto.UpdateProfileRequest
	donorsResult *domain.DonorPage
}

func (f *fakeUserService) Register(_ context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	f.gotRegister = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.RegisterResponse{
		Data:        domain.UserSummary{ID: testUser.ID, Name: req.Name, Email: req.Email},
		UserProfile: &domain.Profile{ID: "profile-1", UserID: testUser.ID},
	}, nil
}

func (f *fakeUserService) ListDonors(_ context.Context, filter domain.DonorFilter, opts domain.PageOptions) (*domain.DonorPage, error) {
	f.gotFilter, f.gotOpts = filter, opts
	if f.err != nil {
		return nil, f.err
	}
	if f.donorsResult != nil {
		return f.donorsResult, nil
	}
	return &domain.DonorPage{Meta: domain.PageMeta{Page: opts.Page, Limit: opts.Limit}, Data: []domain.UserWithProfile{}}, nil
}

func (f *fakeUserService) GetMyProfile(_ context.Context, claims *domain.TokenClaims) (*domain.UserWithProfile, error) {
	f.gotClaims = claims
	if f.err != nil {
		return nil, f.err
	}
	return &domain.UserWithProfile{UserSummary: domain.UserSummary{ID: claims.ID, Name: claims.Name}}, nil
}

func (f *fakeUserService) UpdateMyProfile(_ context.Context, claims *domain.TokenClaims, req *dto.UpdateProfileRequest) (*domain.Profile, error) {
	f.gotClaims, f.gotPatch = claims, req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Profile{ID: "profile-1", UserID: claims.ID, Bio: req.Bio, Age: req.Age}, nil
}

type fakeDonationService struct {
	err       error
	gotClaims *domain.TokenClaims
	gotID     string
	gotStatus string
}

func (f *fakeDonationService) CreateRequest(_ context.Context, claims *domain.TokenClaims, req *dto.CreateDonationRequest) (*domain.DonationRequest, error) {
	f.gotClaims = claims
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DonationRequest{
		ID:            "request-1",
		DonorID:       req.DonorID,
		RequesterID:   claims.ID,
		RequestStatus: domain.RequestStatusPending,
	}, nil
}

func (f *fakeDonationService) ListRequests(context.Context) ([]domain.DonationRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.DonationRequest{{ID: "request-1"}}, nil
}

func (f *fakeDonationService) UpdateRequestStatus(_ context.Context, claims *domain.TokenClaims, requestID, status string) (*domain.DonationRequest, error) {
	f.gotClaims, f.gotID, f.gotStatus = claims, requestID, status
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DonationRequest{ID: requestID, RequestStatus: status}, nil
}

type fakeLimiter struct {
	limit int
	hits  int
	err   error
}

func (f *fakeLimiter) Allow(_ context.Context, _ string, limit int, _ time.Duration) (*service.RateLimitDecision, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.hits++
	if f.hits > f.limit {
		return &service.RateLimitDecision{Limit: limit}, &service.RateLimitError{RetryAfter: 30 * time.Second}
	}
	return &service.RateLimitDecision{Limit: limit, Remaining: max(limit-f.hits, 0)}, nil
}
