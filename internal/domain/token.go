package domain

import "time"

// Identity is the payload shared by access and refresh tokens
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// TokenClaims represents decoded JWT token claims
type TokenClaims struct {
	Identity
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IdentityOf builds the token payload for a user
func IdentityOf(u *User) Identity {
	return Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// HasRole reports whether the claims carry one of the given roles
func (tc TokenClaims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if tc.Role == r {
			return true
		}
	}
	return false
}
