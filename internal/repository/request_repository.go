package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/pkg/database"
)

const requestColumns = `id, donor_id, requester_id, phone_number, date_of_donation, hospital_name,
	hospital_address, reason, request_status, created_at, updated_at`

// requestWithRequesterRow is the flat scan target for donation_requests JOIN users
type requestWithRequesterRow struct {
	domain.DonationRequest

	RequesterName         sql.NullString `db:"requester_name"`
	RequesterEmail        sql.NullString `db:"requester_email"`
	RequesterBloodType    sql.NullString `db:"requester_blood_type"`
	RequesterLocation     sql.NullString `db:"requester_location"`
	RequesterAvailability sql.NullBool   `db:"requester_availability"`
	RequesterCreatedAt    sql.NullTime   `db:"requester_created_at"`
	RequesterUpdatedAt    sql.NullTime   `db:"requester_updated_at"`
}

func (r requestWithRequesterRow) toDomain() domain.DonationRequest {
	req := r.DonationRequest
	if r.RequesterName.Valid {
		req.Requester = &domain.UserSummary{
			ID:           req.RequesterID,
			Name:         r.RequesterName.String,
			Email:        r.RequesterEmail.String,
			BloodType:    r.RequesterBloodType.String,
			Location:     r.RequesterLocation.String,
			Availability: r.RequesterAvailability.Bool,
			CreatedAt:    r.RequesterCreatedAt.Time,
			UpdatedAt:    r.RequesterUpdatedAt.Time,
		}
	}
	return req
}

// donationRequestRepository implements DonationRequestRepository interface
type donationRequestRepository struct {
	db *database.Postgres
}

// NewDonationRequestRepository creates a new donation request repository
func NewDonationRequestRepository(db *database.Postgres) DonationRequestRepository {
	return &donationRequestRepository{db: db}
}

// Create inserts a new donation request
func (r *donationRequestRepository) Create(ctx context.Context, req *domain.DonationRequest) error {
	query := `
		INSERT INTO donation_requests (id, donor_id, requester_id, phone_number, date_of_donation,
			hospital_name, hospital_address, reason, request_status, created_at, updated_at)
		VALUES (:id, :donor_id, :requester_id, :phone_number, :date_of_donation,
			:hospital_name, :hospital_address, :reason, :request_status, :created_at, :updated_at)
	`

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.RequestStatus == "" {
		req.RequestStatus = domain.RequestStatusPending
	}
	now := time.Now().UTC()
	req.CreatedAt, req.UpdatedAt = now, now

	if _, err := r.db.DB.NamedExecContext(ctx, query, req); err != nil {
		return wrapError("create donation request", err)
	}
	return nil
}

// GetByID retrieves a donation request by ID
func (r *donationRequestRepository) GetByID(ctx context.Context, id string) (*domain.DonationRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("donation request %q: %w", id, domain.ErrNotFound)
	}

	query := `SELECT ` + requestColumns + ` FROM donation_requests WHERE id = $1`

	req := &domain.DonationRequest{}
	if err := r.db.DB.GetContext(ctx, req, query, id); err != nil {
		return nil, wrapError("get donation request", err)
	}
	return req, nil
}

// ListWithRequester returns every request joined to its requester, newest first
func (r *donationRequestRepository) ListWithRequester(ctx context.Context) ([]domain.DonationRequest, error) {
	query := `
		SELECT dr.id, dr.donor_id, dr.requester_id, dr.phone_number, dr.date_of_donation,
		       dr.hospital_name, dr.hospital_address, dr.reason, dr.request_status,
		       dr.created_at, dr.updated_at,
		       u.name AS requester_name, u.email AS requester_email,
		       u.blood_type AS requester_blood_type, u.location AS requester_location,
		       u.availability AS requester_availability,
		       u.created_at AS requester_created_at, u.updated_at AS requester_updated_at
		FROM donation_requests dr
		LEFT JOIN users u ON u.id = dr.requester_id
		ORDER BY dr.created_at DESC, dr.id DESC
	`

	var rows []requestWithRequesterRow
	if err := r.db.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, wrapError("list donation requests", err)
	}

	requests := make([]domain.DonationRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, row.toDomain())
	}
	return requests, nil
}

// UpdateStatus overwrites the status of a request
func (r *donationRequestRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.DonationRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("donation request %q: %w", id, domain.ErrNotFound)
	}

	query := `
		UPDATE donation_requests
		SET request_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + requestColumns

	req := &domain.DonationRequest{}
	if err := r.db.DB.GetContext(ctx, req, query, id, status); err != nil {
		return nil, wrapError("update donation request status", err)
	}
	return req, nil
}
