package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/utils"
)

const claimsKey = "claims"

// AuthMiddleware runs the role guard and stores the verified claims in the context
func AuthMiddleware(guard *utils.RoleGuard, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := guard.Authorize(c.GetHeader("Authorization"), roles...)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// claimsFrom returns the acting identity set by AuthMiddleware
func claimsFrom(c *gin.Context) (*domain.TokenClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*domain.TokenClaims)
	return claims, ok
}
