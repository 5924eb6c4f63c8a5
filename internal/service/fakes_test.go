package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/events"
)

// fakeStore is an in-memory stand-in for the three repositories
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	profiles map[string]*domain.Profile // keyed by user id
	requests map[string]*domain.DonationRequest
	failOn   string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*domain.User{},
		profiles: map[string]*domain.Profile{},
		requests: map[string]*domain.DonationRequest{},
	}
}

func (f *fakeStore) fail(op string) error {
	if f.failOn == op {
		return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
	}
	return nil
}

func (f *fakeStore) CreateWithProfile(_ context.Context, user *domain.User, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail("create"); err != nil {
		return err
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", domain.ErrConflict)
		}
	}
	// profile insert failure rolls back the user insert
	if profile.Age != nil && *profile.Age < 0 {
		return fmt.Errorf("create user profile: check constraint violated")
	}

	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt, user.UpdatedAt = now, now
	profile.ID = uuid.NewString()
	profile.UserID = user.ID
	profile.CreatedAt, profile.UpdatedAt = now, now

	u := *user
	p := *profile
	f.users[u.ID] = &u
	f.profiles[u.ID] = &p
	return nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail("get"); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", domain.ErrNotFound)
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, fmt.Errorf("get user by id: %w", domain.ErrNotFound)
}

func (f *fakeStore) GetWithProfile(_ context.Context, id string) (*domain.UserWithProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user with profile: %w", domain.ErrNotFound)
	}
	out := &domain.UserWithProfile{UserSummary: u.Summary()}
	if p, ok := f.profiles[id]; ok {
		cp := *p
		out.Profile = &cp
	}
	return out, nil
}

func (f *fakeStore) ListDonors(_ context.Context, filter domain.DonorFilter, opts domain.PageOptions) ([]domain.UserWithProfile, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*domain.User
	for _, u := range f.users {
		if filter.SearchTerm != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.SearchTerm)) {
			continue
		}
		if filter.BloodType != nil && u.BloodType != *filter.BloodType {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	var page []domain.UserWithProfile
	for i := opts.Skip(); i < len(matched) && len(page) < opts.Limit; i++ {
		page = append(page, domain.UserWithProfile{UserSummary: matched[i].Summary()})
	}
	return page, int64(len(matched)), nil
}

func (f *fakeStore) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("get profile: %w", domain.ErrNotFound)
}

func (f *fakeStore) UpdateByUserID(_ context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("update profile: %w", domain.ErrNotFound)
	}
	if patch.Bio != nil {
		p.Bio = patch.Bio
	}
	if patch.Age != nil {
		p.Age = patch.Age
	}
	if patch.LastDonationDate != nil {
		p.LastDonationDate = patch.LastDonationDate
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (f *fakeStore) Create(_ context.Context, req *domain.DonationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[req.DonorID]; !ok {
		return fmt.Errorf("create donation request: foreign key violated")
	}
	req.ID = uuid.NewString()
	req.CreatedAt, req.UpdatedAt = time.Now(), time.Now()
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeStore) GetRequest(id string) *domain.DonationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[id]
}

func (f *fakeStore) ListWithRequester(context.Context) ([]domain.DonationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.DonationRequest, 0, len(f.requests))
	for _, r := range f.requests {
		cp := *r
		if u, ok := f.users[r.RequesterID]; ok {
			summary := u.Summary()
			cp.Requester = &summary
		}
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id, status string) (*domain.DonationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("update donation request status: %w", domain.ErrNotFound)
	}
	r.RequestStatus = status
	cp := *r
	return &cp, nil
}

// fakeRequests adapts fakeStore to DonationRequestRepository, whose GetByID
// collides with the user repository method of the same name
type fakeRequests struct{ *fakeStore }

func (f fakeRequests) GetByID(_ context.Context, id string) (*domain.DonationRequest, error) {
	if r := f.GetRequest(id); r != nil {
		cp := *r
		return &cp, nil
	}
	return nil, fmt.Errorf("get donation request: %w", domain.ErrNotFound)
}

type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: map[string]time.Duration{}}
}

func (f *fakeRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.revoked[tokenID]; ok || ttl <= 0 {
		return false, nil
	}
	f.revoked[tokenID] = ttl
	return true, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
