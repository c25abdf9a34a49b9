package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/domain/entity"
	"github.com/Kanha-Behera/spam-sms-detection-Kanha-Behera/internal/usecase"
)

// Error codes returned in the response envelope
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInference          = "INFERENCE_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// Validation details are returned to the caller; server-side failures are not.
func MapUsecaseError(err error) ErrorResponse {
	var validationErr *entity.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       CodeValidation,
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrBatchTooLarge):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidRequest,
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrServiceUnavailable):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       CodeServiceUnavailable,
			Message:    "model is not loaded, retry later",
		}
	case errors.Is(err, usecase.ErrInference):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInference,
			Message:    "prediction failed",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternal,
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
// Unavailable responses carry a Retry-After header when retryAfter is positive.
func HandleUsecaseError(c *gin.Context, err error, retryAfter time.Duration) {
	errResp := MapUsecaseError(err)
	if errResp.StatusCode == http.StatusServiceUnavailable && retryAfter > 0 {
		seconds := int(retryAfter.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
	}
	_ = c.Error(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

// HandleValidationError handles a request that is well formed but fails field rules.
func HandleValidationError(c *gin.Context, message string) {
	respondError(c, http.StatusUnprocessableEntity, CodeValidation, message)
}

// HandleInternalError answers with a generic 500 that leaks nothing about the cause.
func HandleInternalError(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
