package repository

import (
	"github.com/prperemyshlev/donor-service/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Profile  ProfileRepository
	Donation DonationRequestRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Profile:  NewProfileRepository(db),
		Donation: NewDonationRequestRepository(db),
	}
}
