package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
	aggregationdomain "github.com/smallbiznis/impactmap/internal/aggregation/domain"
	badgedomain "github.com/smallbiznis/impactmap/internal/badge/domain"
	certificatedomain "github.com/smallbiznis/impactmap/internal/certificate/domain"
	"github.com/smallbiznis/impactmap/internal/leveling"
	obsmetrics "github.com/smallbiznis/impactmap/internal/observability/metrics"
	organizationdomain "github.com/smallbiznis/impactmap/internal/organization/domain"
	verificationdomain "github.com/smallbiznis/impactmap/internal/verification/domain"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"github.com/smallbiznis/impactmap/pkg/db"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, obsmetrics.ErrLockUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog returns the error type and code recorded on the
// request log line.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if asValidationErrors(err) != nil || isValidationError(err) {
		return "validation_error", err.Error()
	}
	switch {
	case isConflictError(err):
		return "conflict", err.Error()
	case isNotFoundError(err):
		return "not_found", err.Error()
	case errors.Is(err, obsmetrics.ErrLockUnavailable):
		return "service_unavailable", "lock_unavailable"
	case errors.Is(err, db.ErrStorage):
		return "storage_failure", obsmetrics.ClassifyPipelineReason(err)
	default:
		return "internal_error", "unknown"
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, leveling.ErrInvalidHours),
		errors.Is(err, badgedomain.ErrInvalidCatalog),
		errors.Is(err, badgedomain.ErrInvalidUser),
		errors.Is(err, aggregationdomain.ErrInvalidUser),
		errors.Is(err, certificatedomain.ErrInvalidUser):
		return true
	case isVolunteerValidationError(err),
		isActivityValidationError(err),
		isVerificationValidationError(err),
		isOrganizationValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, volunteerdomain.ErrNotFound),
		errors.Is(err, activitydomain.ErrNotFound),
		errors.Is(err, activitydomain.ErrUserNotFound),
		errors.Is(err, verificationdomain.ErrNotFound),
		errors.Is(err, verificationdomain.ErrUserNotFound),
		errors.Is(err, organizationdomain.ErrNotFound),
		errors.Is(err, aggregationdomain.ErrNotFound),
		errors.Is(err, certificatedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, volunteerdomain.ErrEmailTaken),
		errors.Is(err, activitydomain.ErrConflict),
		errors.Is(err, verificationdomain.ErrConflict):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, volunteerdomain.ErrEmailTaken):
		return "email already registered"
	case errors.Is(err, activitydomain.ErrConflict),
		errors.Is(err, verificationdomain.ErrConflict):
		return "activity status changed concurrently"
	default:
		return "conflict"
	}
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_request":
		return "request"
	case "invalid_badge_catalog":
		return "badges"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "invalid_hours":
		return "hours must be greater than zero"
	case "invalid_category":
		return "category is not supported"
	case "invalid_status":
		return "status must be pending, verified or rejected"
	default:
		return "invalid value"
	}
}

func isVolunteerValidationError(err error) bool {
	switch err {
	case volunteerdomain.ErrInvalidID,
		volunteerdomain.ErrInvalidName,
		volunteerdomain.ErrInvalidEmail:
		return true
	default:
		return false
	}
}

func isActivityValidationError(err error) bool {
	switch err {
	case activitydomain.ErrInvalidID,
		activitydomain.ErrInvalidUser,
		activitydomain.ErrInvalidOrganization,
		activitydomain.ErrInvalidTitle,
		activitydomain.ErrInvalidCategory,
		activitydomain.ErrInvalidDate,
		activitydomain.ErrInvalidTime,
		activitydomain.ErrInvalidHours,
		activitydomain.ErrInvalidCoordinates,
		activitydomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}

func isVerificationValidationError(err error) bool {
	switch err {
	case verificationdomain.ErrInvalidID,
		verificationdomain.ErrInvalidUser,
		verificationdomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}

func isOrganizationValidationError(err error) bool {
	switch err {
	case organizationdomain.ErrInvalidName,
		organizationdomain.ErrInvalidCategory,
		organizationdomain.ErrInvalidCoordinates,
		organizationdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
