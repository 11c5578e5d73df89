package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"uitgo/internal/client"
	"uitgo/internal/repository"
	"uitgo/internal/service"
)

// ErrorBody is the error payload shared by all services.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope is the uniform error response.
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// respondError maps a service/repository error to its HTTP status and the
// uniform error envelope. Unexpected errors are reported generically and
// never leak internals.
func respondError(c *gin.Context, err error) {
	status, code := classifyError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	c.JSON(status, ErrorEnvelope{
		Success: false,
		Error:   ErrorBody{Code: code, Message: message},
	})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, client.ErrTripNotFound):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, service.ErrNoDriverAvailable):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, service.ErrCustomerNotRecognized):
		return http.StatusBadRequest, "INVALID_CUSTOMER"

	case errors.Is(err, service.ErrDriverNotRecognized):
		return http.StatusBadRequest, "INVALID_DRIVER"

	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidPickupLocation),
		errors.Is(err, service.ErrInvalidDestinationLocation),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidBill):
		return http.StatusBadRequest, "VALIDATION_ERROR"

	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// Health returns a liveness handler for the named service.
func Health(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
