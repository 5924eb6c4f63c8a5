package utils

import (
	"fmt"
	"strings"

	"github.com/prperemyshlev/donor-service/internal/domain"
)

const bearerScheme = "bearer"

// AccessTokenValidator verifies access tokens
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (*domain.TokenClaims, error)
}

// RoleGuard authorizes a request from its Authorization header
type RoleGuard struct {
	tokens AccessTokenValidator
}

// NewRoleGuard creates a new role guard
func NewRoleGuard(tokens AccessTokenValidator) *RoleGuard {
	return &RoleGuard{tokens: tokens}
}

// Authorize verifies the bearer token and checks its role against the permitted set.
// An empty permitted set admits any authenticated caller.
func (g *RoleGuard) Authorize(header string, permitted ...domain.Role) (*domain.TokenClaims, error) {
	token, err := ExtractBearerToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	if len(permitted) > 0 && !claims.HasRole(permitted...) {
		return nil, fmt.Errorf("%w: role %q is not permitted", domain.ErrForbidden, claims.Role)
	}

	return claims, nil
}

// ExtractBearerToken returns the token from a "Bearer <token>" header value
func ExtractBearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", fmt.Errorf("%w: missing bearer token", domain.ErrUnauthenticated)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: missing bearer token", domain.ErrUnauthenticated)
	}
	return token, nil
}
