package repository

import (
	"context"

	"github.com/prperemyshlev/donor-service/internal/domain"
)

func (s *Suite) newRequest(donorID, requesterID string) *domain.DonationRequest {
	return &domain.DonationRequest{
		DonorID:         donorID,
		RequesterID:     requesterID,
		PhoneNumber:     "+8801700000000",
		DateOfDonation:  "2026-11-01",
		HospitalName:    "City Hospital",
		HospitalAddress: "1 Main Road",
		Reason:          "surgery",
	}
}

func (s *Suite) TestCreateAndListRequests() {
	ctx := context.Background()
	donor := s.createUser("Alice", "alice@example.com", "O+", "Dhaka", true)
	requester := s.createUser("Bob", "bob@example.com", "A-", "Chittagong", true)

	req := s.newRequest(donor.ID, requester.ID)
	s.Require().NoError(s.Repos.Donation.Create(ctx, req))
	s.NotEmpty(req.ID)
	s.Equal(domain.RequestStatusPending, req.RequestStatus)

	list, err := s.Repos.Donation.ListWithRequester(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(req.ID, list[0].ID)
	s.Require().NotNil(list[0].Requester)
	s.Equal("Bob", list[0].Requester.Name)
	s.Equal(requester.ID, list[0].Requester.ID)
}

func (s *Suite) TestCreateRequestUnknownDonor() {
	requester := s.createUser("Bob", "bob@example.com", "A-", "Chittagong", true)

	err := s.Repos.Donation.Create(context.Background(), s.newRequest("3f1e9e0a-0000-4000-8000-000000000000", requester.ID))
	s.Error(err)
}

func (s *Suite) TestUpdateStatusIsIdempotent() {
	ctx := context.Background()
	donor := s.createUser("Alice", "alice@example.com", "O+", "Dhaka", true)
	requester := s.createUser("Bob", "bob@example.com", "A-", "Chittagong", true)

	req := s.newRequest(donor.ID, requester.ID)
	s.Require().NoError(s.Repos.Donation.Create(ctx, req))

	for range 2 {
		updated, err := s.Repos.Donation.UpdateStatus(ctx, req.ID, "ACCEPTED")
		s.Require().NoError(err)
		s.Equal("ACCEPTED", updated.RequestStatus)
	}

	stored, err := s.Repos.Donation.GetByID(ctx, req.ID)
	s.Require().NoError(err)
	s.Equal("ACCEPTED", stored.RequestStatus)
}

func (s *Suite) TestUpdateStatusUnknownID() {
	ctx := context.Background()
	donor := s.createUser("Alice", "alice@example.com", "O+", "Dhaka", true)
	requester := s.createUser("Bob", "bob@example.com", "A-", "Chittagong", true)
	req := s.newRequest(donor.ID, requester.ID)
	s.Require().NoError(s.Repos.Donation.Create(ctx, req))

	_, err := s.Repos.Donation.UpdateStatus(ctx, "3f1e9e0a-0000-4000-8000-000000000000", "ACCEPTED")
	s.ErrorIs(err, domain.ErrNotFound)

	stored, err := s.Repos.Donation.GetByID(ctx, req.ID)
	s.Require().NoError(err)
	s.Equal(domain.RequestStatusPending, stored.RequestStatus)
}
