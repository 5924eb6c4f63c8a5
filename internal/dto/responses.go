package dto

import "github.com/prperemyshlev/donor-service/internal/domain"

// Response is the success envelope
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Meta       any    `json:"meta,omitempty"`
	Data       any    `json:"data"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	Error        any           `json:"error,omitempty"`
	ErrorDetails *ErrorDetails `json:"errorDetails,omitempty"`
}

// ErrorDetails lists per-field validation issues
type ErrorDetails struct {
	Issues []domain.FieldIssue `json:"issues"`
}

// NotFoundError describes an unmatched route
type NotFoundError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Data        domain.UserSummary `json:"data"`
	UserProfile *domain.Profile    `json:"userProfile"`
}
