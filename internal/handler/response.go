package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prperemyshlev/donor-service/internal/domain"
	"github.com/prperemyshlev/donor-service/internal/dto"
	"github.com/prperemyshlev/donor-service/internal/service"
)

const (
	msgValidation      = "Validation error"
	msgInvalidLogin    = "Invalid email or password!"
	msgUnauthenticated = "You are not authorized!"
	msgForbidden       = "You do not have permission to perform this action!"
	msgNotFound        = "Requested resource not found!"
	msgRateLimited     = "Too many requests, please try again later!"
	msgTimeout         = "The request timed out, please try again!"
	msgInternal        = "Something went wrong!"
)

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.Response{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func respondWithMeta(c *gin.Context, status int, message string, meta, data any) {
	c.JSON(status, dto.Response{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Meta:       meta,
		Data:       data,
	})
}

// respondError maps an error kind to its status and failure envelope.
// Unclassified errors are attached to the context for the request logger
// and never leak to the client.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Message:      msgValidation,
			ErrorDetails: &dto.ErrorDetails{Issues: verr.Issues},
		})
		return
	}

	status, message := classify(err)
	if status == http.StatusInternalServerError || status == http.StatusGatewayTimeout {
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Message: message,
		Error:   gin.H{"message": message},
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidLogin
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, msgUnauthenticated
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, msgRateLimited
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, msgTimeout
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// NotFound handles unmatched routes
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{
		Message: "API NOT FOUND!",
		Error: dto.NotFoundError{
			Path:    c.Request.URL.RequestURI(),
			Message: "Your requested path is not found!",
		},
	})
}

// Recovery turns panics into the generic 500 envelope
func Recovery(c *gin.Context, recovered any) {
	_ = c.Error(fmt.Errorf("panic: %v", recovered))
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: msgInternal,
		Error:   gin.H{"message": msgInternal},
	})
}
