package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/dto"
	"github.com/prperemyshlev/donor-service/internal/service"
)

// DonationHandler handles donation request endpoints
type DonationHandler struct {
	donationService service.DonationService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// CreateRequest handles POST /donation-request
func (h *DonationHandler) CreateRequest(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	created, err := h.donationService.CreateRequest(c.Request.Context(), claims, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Request successfully made", created)
}

// ListRequests handles GET /donation-request
func (h *DonationHandler) ListRequests(c *gin.Context) {
	requests, err := h.donationService.ListRequests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Donation requests retrieved successfully", requests)
}

// UpdateRequestStatus handles POST /donation-request/:requestId
func (h *DonationHandler) UpdateRequestStatus(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	var req dto.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	updated, err := h.donationService.UpdateRequestStatus(c.Request.Context(), claims, c.Param("requestId"), req.RequestStatus)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Donation request status successfully updated", updated)
}
