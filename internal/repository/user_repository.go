package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/pkg/database"
)

const userColumns = `id, name, email, password_hash, blood_type, location, availability, role, created_at, updated_at`

// userProfileColumns selects a user joined with its (possibly missing) profile
const userProfileColumns = `
	u.id, u.name, u.email, u.blood_type, u.location, u.availability, u.created_at, u.updated_at,
	p.id AS profile_id, p.user_id AS profile_user_id, p.bio AS profile_bio, p.age AS profile_age,
	p.last_donation_date AS profile_last_donation_date,
	p.created_at AS profile_created_at, p.updated_at AS profile_updated_at`

// userProfileRow is the flat scan target for users LEFT JOIN user_profiles
type userProfileRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	BloodType    string    `db:"blood_type"`
	Location     string    `db:"location"`
	Availability bool      `db:"availability"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`

	ProfileID               sql.NullString `db:"profile_id"`
	ProfileUserID           sql.NullString `db:"profile_user_id"`
	ProfileBio              sql.NullString `db:"profile_bio"`
	ProfileAge              sql.NullInt64  `db:"profile_age"`
	ProfileLastDonationDate sql.NullString `db:"profile_last_donation_date"`
	ProfileCreatedAt        sql.NullTime   `db:"profile_created_at"`
	ProfileUpdatedAt        sql.NullTime   `db:"profile_updated_at"`
}

func (r userProfileRow) toDomain() domain.UserWithProfile {
	out := domain.UserWithProfile{
		UserSummary: domain.UserSummary{
			ID:           r.ID,
			Name:         r.Name,
			Email:        r.Email,
			BloodType:    r.BloodType,
			Location:     r.Location,
			Availability: r.Availability,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		},
	}

	if !r.ProfileID.Valid {
		return out
	}

	profile := &domain.Profile{
		ID:        r.ProfileID.String,
		UserID:    r.ProfileUserID.String,
		CreatedAt: r.ProfileCreatedAt.Time,
		UpdatedAt: r.ProfileUpdatedAt.Time,
	}
	if r.ProfileBio.Valid {
		profile.Bio = &r.ProfileBio.String
	}
	if r.ProfileAge.Valid {
		age := int(r.ProfileAge.Int64)
		profile.Age = &age
	}
	if r.ProfileLastDonationDate.Valid {
		profile.LastDonationDate = &r.ProfileLastDonationDate.String
	}
	out.Profile = profile
	return out
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile inserts the account and its profile in one transaction
func (r *userRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	userQuery := `
		INSERT INTO users (id, name, email, password_hash, blood_type, location, availability, role, created_at, updated_at)
		VALUES (:id, :name, :email, :password_hash, :blood_type, :location, :availability, :role, :created_at, :updated_at)
	`
	profileQuery := `
		INSERT INTO user_profiles (id, user_id, bio, age, last_donation_date, created_at, updated_at)
		VALUES (:id, :user_id, :bio, :age, :last_donation_date, :created_at, :updated_at)
	`

	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	user.CreatedAt, user.UpdatedAt = now, now

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.UserID = user.ID
	profile.CreatedAt, profile.UpdatedAt = now, now

	err := r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, userQuery, user); err != nil {
			return wrapError("create user", err)
		}
		if _, err := tx.NamedExecContext(ctx, profileQuery, profile); err != nil {
			return wrapError("create user profile", err)
		}
		return nil
	})
	return err
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user := &domain.User{}
	if err := r.db.DB.GetContext(ctx, user, query, email); err != nil {
		return nil, wrapError("get user by email", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("user %q: %w", id, domain.ErrNotFound)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user := &domain.User{}
	if err := r.db.DB.GetContext(ctx, user, query, id); err != nil {
		return nil, wrapError("get user by id", err)
	}
	return user, nil
}

// GetWithProfile retrieves a user joined with its profile
func (r *userRepository) GetWithProfile(ctx context.Context, id string) (*domain.UserWithProfile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("user %q: %w", id, domain.ErrNotFound)
	}

	query := `
		SELECT ` + userProfileColumns + `
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	var row userProfileRow
	if err := r.db.DB.GetContext(ctx, &row, query, id); err != nil {
		return nil, wrapError("get user with profile", err)
	}

	out := row.toDomain()
	return &out, nil
}

// ListDonors returns one page of the directory and the total number of matches
func (r *userRepository) ListDonors(ctx context.Context, filter domain.DonorFilter, opts domain.PageOptions) ([]domain.UserWithProfile, int64, error) {
	opts = opts.Normalize()
	where, args := Where(DonorPredicate(filter))

	countQuery := `SELECT COUNT(*) FROM users u ` + where

	var total int64
	if err := r.db.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, wrapError("count donors", err)
	}

	n := len(args)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, userProfileColumns, where, DonorOrder(opts.SortBy, opts.SortOrder), n+1, n+2)

	var rows []userProfileRow
	if err := r.db.DB.SelectContext(ctx, &rows, listQuery, append(args, opts.Limit, opts.Skip())...); err != nil {
		return nil, 0, wrapError("list donors", err)
	}

	donors := make([]domain.UserWithProfile, 0, len(rows))
	for _, row := range rows {
		donors = append(donors, row.toDomain())
	}
	return donors, total, nil
}
