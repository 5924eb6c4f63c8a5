package domain

import "time"

// RequestStatusPending is the status assigned to new donation requests.
// Later statuses are free-form strings supplied by callers.
const RequestStatusPending = "PENDING"

// DonationRequest links a requester to a donor
type DonationRequest struct {
	ID              string    `json:"id" db:"id"`
	DonorID         string    `json:"donorId" db:"donor_id"`
	RequesterID     string    `json:"requesterId" db:"requester_id"`
	PhoneNumber     string    `json:"phoneNumber" db:"phone_number"`
	DateOfDonation  string    `json:"dateOfDonation" db:"date_of_donation"`
	HospitalName    string    `json:"hospitalName" db:"hospital_name"`
	HospitalAddress string    `json:"hospitalAddress" db:"hospital_address"`
	Reason          string    `json:"reason" db:"reason"`
	RequestStatus   string    `json:"requestStatus" db:"request_status"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	Donor     *UserWithProfile `json:"donor,omitempty" db:"-"`
	Requester *UserSummary     `json:"requester,omitempty" db:"-"`
}
