package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/dto"
	"github.com/prperemyshlev/donor-service/internal/service"
)

const (
	refreshTokenCookie = "refreshToken"
	refreshCookiePath  = "/api"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the refresh cookie HTTPS-only.
func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, res.Tokens.RefreshToken)
	respond(c, http.StatusOK, "User logged in successfully!", dto.LoginResponse{
		ID:           res.User.ID,
		Name:         res.User.Name,
		Email:        res.User.Email,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	})
}

// Refresh handles POST /refresh-token
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := refreshTokenFrom(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if token == "" {
		respondError(c, errors.Join(domain.ErrUnauthenticated, errors.New("refresh token is missing")))
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	respond(c, http.StatusOK, "Access token is retrieved successfully!", pair)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := refreshTokenFrom(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshTokenCookie, "", -1, refreshCookiePath, "", h.secureCookie, true)
	respond(c, http.StatusOK, "User logged out successfully!", nil)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshTokenCookie, token, int(h.authService.RefreshTokenTTL().Seconds()), refreshCookiePath, "", h.secureCookie, true)
}

// refreshTokenFrom reads the refresh token from the cookie, falling back to the JSON body
func refreshTokenFrom(c *gin.Context) (string, error) {
	if token, err := c.Cookie(refreshTokenCookie); err == nil && token != "" {
		return token, nil
	}

	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return "", bindError(err)
	}
	return req.RefreshToken, nil
}
