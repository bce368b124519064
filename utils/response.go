package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
)

// ApiError is the uniform wire error body.
type ApiError struct {
	Errors    []string     `json:"errors"`
	Message   string       `json:"message"`
	Reason    string       `json:"reason"`
	Status    string       `json:"status"`
	Timestamp dto.DateTime `json:"timestamp"`
}

// NewApiError builds an ApiError for the given HTTP status.
func NewApiError(status int, detail, reason string) ApiError {
	return ApiError{
		Errors:    []string{detail},
		Message:   detail,
		Reason:    reason,
		Status:    statusName(status),
		Timestamp: dto.DateTime(time.Now()),
	}
}

// RespondError maps a service error onto the wire error body. Unknown errors
// surface as a generic server fault and are logged.
func RespondError(ctx *gin.Context, err error) {
	switch {
	case models.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, NewApiError(
			http.StatusNotFound, err.Error(), "The required object was not found."))
	case models.IsConflict(err):
		ctx.JSON(http.StatusConflict, NewApiError(
			http.StatusConflict, err.Error(), "Integrity constraint has been violated."))
	case models.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, NewApiError(
			http.StatusBadRequest, err.Error(), "Incorrectly made request."))
	default:
		Sugar.Errorf("internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, NewApiError(
			http.StatusInternalServerError, "Internal server error.", "Internal server error."))
	}
}

// RespondBadRequest answers a malformed request detected at the binding
// layer.
func RespondBadRequest(ctx *gin.Context, detail string) {
	ctx.JSON(http.StatusBadRequest, NewApiError(
		http.StatusBadRequest, detail, "Incorrectly made request."))
}

func statusName(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
