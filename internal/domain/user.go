package domain

import "time"

// Role is the access level carried by an account and its tokens
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents an account in the donor directory
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	BloodType    string    `json:"bloodType" db:"blood_type"`
	Location     string    `json:"location" db:"location"`
	Availability bool      `json:"availability" db:"availability"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Profile is the 1:1 extension of a User
type Profile struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"userId" db:"user_id"`
	Bio              *string   `json:"bio" db:"bio"`
	Age              *int      `json:"age" db:"age"`
	LastDonationDate *string   `json:"lastDonationDate" db:"last_donation_date"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfilePatch holds the profile fields a user may change; nil fields are left untouched
type ProfilePatch struct {
	Bio              *string
	Age              *int
	LastDonationDate *string
}

// IsEmpty reports whether the patch changes nothing
func (p ProfilePatch) IsEmpty() bool {
	return p.Bio == nil && p.Age == nil && p.LastDonationDate == nil
}

// UserSummary is the public view of a User (no password hash, no role)
type UserSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BloodType    string    `json:"bloodType"`
	Location     string    `json:"location"`
	Availability bool      `json:"availability"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserWithProfile is a UserSummary joined with its profile
type UserWithProfile struct {
	UserSummary
	Profile *Profile `json:"userProfile"`
}

// Summary strips private fields from the user
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		BloodType:    u.BloodType,
		Location:     u.Location,
		Availability: u.Availability,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
