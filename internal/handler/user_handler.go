package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/dto"
	"github.com/prperemyshlev/donor-service/internal/service"
	"github.com/prperemyshlev/donor-service/internal/utils"
)

// UserHandler handles registration, directory and profile requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles POST /user/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	res, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully!", res)
}

// ListDonors handles GET /donor-list
func (h *UserHandler) ListDonors(c *gin.Context) {
	var q dto.DonorListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, bindError(err))
		return
	}

	filter, opts := donorQuery(q)
	page, err := h.userService.ListDonors(c.Request.Context(), filter, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	respondWithMeta(c, http.StatusOK, "Donors successfully found", page.Meta, page.Data)
}

// GetMyProfile handles GET /my-profile
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	profile, err := h.userService.GetMyProfile(c.Request.Context(), claims)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateMyProfile handles PUT /my-profile
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	profile, err := h.userService.UpdateMyProfile(c.Request.Context(), claims, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "User profile updated successfully", profile)
}

// donorQuery converts query parameters into a filter and paging options.
// Unparseable values are ignored rather than rejected.
func donorQuery(q dto.DonorListQuery) (domain.DonorFilter, domain.PageOptions) {
	filter := domain.DonorFilter{
		SearchTerm: strings.TrimSpace(q.SearchTerm),
		BloodType:  utils.OptionalString(q.BloodType),
		Location:   utils.OptionalString(q.Location),
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(q.Availability)); err == nil {
		filter.Availability = &v
	}

	opts := domain.PageOptions{
		SortBy:    strings.TrimSpace(q.SortBy),
		SortOrder: strings.TrimSpace(q.SortOrder),
	}
	opts.Page, _ = strconv.Atoi(strings.TrimSpace(q.Page))
	opts.Limit, _ = strconv.Atoi(strings.TrimSpace(q.Limit))

	return filter, opts.Normalize()
}
