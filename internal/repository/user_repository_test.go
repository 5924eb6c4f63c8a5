package repository

import (
	"context"
	"time"

	"github.com/prperemyshlev/donor-service/internal/domain"
)

func (s *Suite) TestCreateWithProfile() {
	ctx := context.Background()
	bio := "regular donor"
	age := 29

	user := &domain.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		BloodType:    "O+",
		Location:     "Dhaka",
	}
	profile := &domain.Profile{Bio: &bio, Age: &age}

	s.Require().NoError(s.Repos.User.CreateWithProfile(ctx, user, profile))
	s.NotEmpty(user.ID)
	s.Equal(domain.RoleUser, user.Role)
	s.Equal(user.ID, profile.UserID)

	got, err := s.Repos.User.GetWithProfile(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)
	s.Require().NotNil(got.Profile)
	s.Equal(bio, *got.Profile.Bio)
	s.Equal(age, *got.Profile.Age)
	s.Nil(got.Profile.LastDonationDate)
}

func (s *Suite) TestCreateWithProfileIsAtomic() {
	ctx := context.Background()
	invalidAge := -1

	user := &domain.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		BloodType:    "O+",
		Location:     "Dhaka",
	}

	err := s.Repos.User.CreateWithProfile(ctx, user, &domain.Profile{Age: &invalidAge})
	s.Require().Error(err)
	s.Equal(0, s.countUsers())
}

func (s *Suite) TestCreateDuplicateEmail() {
	s.createUser("Alice", "alice@example.com", "O+", "Dhaka", true)

	dup := &domain.User{Name: "Other", Email: "alice@example.com", PasswordHash: "x", BloodType: "A+", Location: "X"}
	err := s.Repos.User.CreateWithProfile(context.Background(), dup, &domain.Profile{})
	s.ErrorIs(err, domain.ErrConflict)
	s.Equal(1, s.countUsers())
}

func (s *Suite) TestGetByEmail() {
	created := s.createUser("Alice", "alice@example.com", "O+", "Dhaka", true)

	got, err := s.Repos.User.GetByEmail(context.Background(), "alice@example.com")
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal("hash", got.PasswordHash)

	_, err = s.Repos.User.GetByEmail(context.Background(), "nobody@example.com")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *Suite) TestGetByIDNotFound() {
	_, err := s.Repos.User.GetByID(context.Background(), "3f1e9e0a-0000-4000-8000-000000000000")
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.Repos.User.GetByID(context.Background(), "not-a-uuid")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *Suite) TestListDonorsFilterComposition() {
	ctx := context.Background()
	s.createUser("Alice", "alice@example.com", "O+", "Dhaka", true)
	s.createUser("Bob", "bob@example.com", "A-", "Chittagong", false)

	donors, total, err := s.Repos.User.ListDonors(ctx, domain.DonorFilter{SearchTerm: "ali"}, domain.PageOptions{})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(donors, 1)
	s.Equal("Alice", donors[0].Name)
	s.NotNil(donors[0].Profile)

	bloodType := "A-"
	donors, total, err = s.Repos.User.ListDonors(ctx, domain.DonorFilter{BloodType: &bloodType}, domain.PageOptions{})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(donors, 1)
	s.Equal("Bob", donors[0].Name)

	donors, total, err = s.Repos.User.ListDonors(ctx, domain.DonorFilter{SearchTerm: "zzz", BloodType: &bloodType}, domain.PageOptions{})
	s.Require().NoError(err)
	s.EqualValues(0, total)
	s.Empty(donors)

	available := true
	donors, _, err = s.Repos.User.ListDonors(ctx, domain.DonorFilter{Availability: &available}, domain.PageOptions{})
	s.Require().NoError(err)
	s.Require().Len(donors, 1)
	s.Equal("Alice", donors[0].Name)
}

func (s *Suite) TestListDonorsSearchIsCaseInsensitive() {
	s.createUser("Alice", "alice@example.com", "O+", "Dhaka", true)

	donors, _, err := s.Repos.User.ListDonors(context.Background(), domain.DonorFilter{SearchTerm: "DHAK"}, domain.PageOptions{})
	s.Require().NoError(err)
	s.Len(donors, 1)
}

func (s *Suite) TestListDonorsPagination() {
	ctx := context.Background()
	s.createUser("Carol", "carol@example.com", "B+", "Sylhet", true)
	time.Sleep(5 * time.Millisecond)
	s.createUser("Alice", "alice@example.com", "O+", "Dhaka", true)
	time.Sleep(5 * time.Millisecond)
	s.createUser("Bob", "bob@example.com", "A-", "Chittagong", true)

	donors, total, err := s.Repos.User.ListDonors(ctx, domain.DonorFilter{}, domain.PageOptions{Page: 2, Limit: 1})
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Require().Len(donors, 1)
	s.Equal("Alice", donors[0].Name, "default order is newest first")

	donors, _, err = s.Repos.User.ListDonors(ctx, domain.DonorFilter{}, domain.PageOptions{SortBy: "name", SortOrder: "asc"})
	s.Require().NoError(err)
	s.Require().Len(donors, 3)
	s.Equal([]string{"Alice", "Bob", "Carol"}, []string{donors[0].Name, donors[1].Name, donors[2].Name})
}
