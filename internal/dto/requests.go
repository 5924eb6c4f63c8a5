package dto

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a registration request. Profile fields are optional.
type RegisterRequest struct {
	Name             string  `json:"name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required"`
	BloodType        string  `json:"bloodType" binding:"required"`
	Location         string  `json:"location" binding:"required"`
	Availability     *bool   `json:"availability"`
	Bio              *string `json:"bio"`
	Age              *int    `json:"age" binding:"omitempty,min=0,max=150"`
	LastDonationDate *string `json:"lastDonationDate"`
}

// RefreshTokenRequest carries a refresh token when no cookie is sent
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// CreateDonationRequest represents a new donation request
type CreateDonationRequest struct {
	DonorID         string `json:"donorId" binding:"required"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	DateOfDonation  string `json:"dateOfDonation" binding:"required"`
	HospitalName    string `json:"hospitalName" binding:"required"`
	HospitalAddress string `json:"hospitalAddress" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
}

// UpdateRequestStatusRequest sets the status of a donation request
type UpdateRequestStatusRequest struct {
	RequestStatus string `json:"requestStatus" binding:"required"`
}

// UpdateProfileRequest is a partial profile update. Absent fields are left untouched.
type UpdateProfileRequest struct {
	Bio              *string `json:"bio"`
	Age              *int    `json:"age" binding:"omitempty,min=0,max=150"`
	LastDonationDate *string `json:"lastDonationDate"`
}

// DonorListQuery is the donor directory query string
type DonorListQuery struct {
	SearchTerm   string `form:"searchTerm"`
	BloodType    string `form:"bloodType"`
	Location     string `form:"location"`
	Availability string `form:"availability"`
	Page         string `form:"page"`
	Limit        string `form:"limit"`
	SortBy       string `form:"sortBy"`
	SortOrder    string `form:"sortOrder"`
}
