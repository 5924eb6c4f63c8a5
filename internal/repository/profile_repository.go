package repository

import (
	"context"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/pkg/database"
)

const profileColumns = `id, user_id, bio, age, last_donation_date, created_at, updated_at`

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *database.Postgres
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.Postgres) ProfileRepository {
	return &profileRepository{db: db}
}

// GetByUserID retrieves the profile owned by a user
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`

	profile := &domain.Profile{}
	if err := r.db.DB.GetContext(ctx, profile, query, userID); err != nil {
		return nil, wrapError("get profile", err)
	}
	return profile, nil
}

// UpdateByUserID applies the non-nil patch fields to the profile owned by userID
func (r *profileRepository) UpdateByUserID(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	query := `
		UPDATE user_profiles
		SET bio = COALESCE($2, bio),
		    age = COALESCE($3, age),
		    last_donation_date = COALESCE($4, last_donation_date),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	profile := &domain.Profile{}
	err := r.db.DB.GetContext(ctx, profile, query, userID, patch.Bio, patch.Age, patch.LastDonationDate)
	if err != nil {
		return nil, wrapError("update profile", err)
	}
	return profile, nil
}
