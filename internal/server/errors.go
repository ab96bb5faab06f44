package server

import (
	"errors"
	"net/http"
	"strings"

	accountdomain "github.com/fieldscope/fieldscope/internal/account/domain"
	activitydomain "github.com/fieldscope/fieldscope/internal/activity/domain"
	auditdomain "github.com/fieldscope/fieldscope/internal/audit/domain"
	"github.com/fieldscope/fieldscope/internal/authorization"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	messagedomain "github.com/fieldscope/fieldscope/internal/message/domain"
	notificationdomain "github.com/fieldscope/fieldscope/internal/notification/domain"
	profiledomain "github.com/fieldscope/fieldscope/internal/profile/domain"
	salesrecorddomain "github.com/fieldscope/fieldscope/internal/salesrecord/domain"
	salestargetdomain "github.com/fieldscope/fieldscope/internal/salestarget/domain"
	scheduledomain "github.com/fieldscope/fieldscope/internal/schedule/domain"
	teamdomain "github.com/fieldscope/fieldscope/internal/team/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ValidationErrors carries per-field messages for a 400 response.
type ValidationErrors struct {
	Fields map[string]string
}

func (v *ValidationErrors) Error() string {
	return "validation_failed"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware renders the last error attached to the context as
// the API error envelope. Handlers call AbortWithError and return.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		lastErr := c.Errors.Last()
		if lastErr == nil || c.Writer.Written() {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.JSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var validation *ValidationErrors
	if errors.As(err, &validation) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "request validation failed",
			Errors:  validation.Fields,
		}
	}

	switch {
	case errors.Is(err, identitydomain.ErrInvalidCredentials),
		errors.Is(err, identitydomain.ErrInvalidSession),
		errors.Is(err, identitydomain.ErrSessionExpired),
		errors.Is(err, identitydomain.ErrSessionRevoked),
		errors.Is(err, accountdomain.ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: err.Error()}

	case errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, accountdomain.ErrManagerRequired),
		errors.Is(err, accountdomain.ErrSuperadminProtected),
		errors.Is(err, activitydomain.ErrNotOwner),
		errors.Is(err, salesrecorddomain.ErrNotOwner),
		errors.Is(err, scheduledomain.ErrNotOwner):
		return http.StatusForbidden, errorPayload{Type: "forbidden", Message: err.Error()}

	case errors.Is(err, identitydomain.ErrUserNotFound),
		errors.Is(err, identitydomain.ErrSessionNotFound),
		errors.Is(err, profiledomain.ErrProfileNotFound),
		errors.Is(err, profiledomain.ErrRoleNotFound),
		errors.Is(err, activitydomain.ErrActivityNotFound),
		errors.Is(err, salesrecorddomain.ErrRecordNotFound),
		errors.Is(err, salestargetdomain.ErrTargetNotFound),
		errors.Is(err, scheduledomain.ErrScheduleNotFound),
		errors.Is(err, messagedomain.ErrMessageNotFound),
		errors.Is(err, notificationdomain.ErrNotificationNotFound),
		errors.Is(err, teamdomain.ErrTeamNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}

	case errors.Is(err, identitydomain.ErrUserExists),
		errors.Is(err, teamdomain.ErrTeamExists),
		errors.Is(err, accountdomain.ErrEmailTaken),
		errors.Is(err, scheduledomain.ErrCollaboratorBusy):
		return http.StatusConflict, errorPayload{Type: "conflict", Message: err.Error()}

	case errors.Is(err, identitydomain.ErrInvalidEmail),
		errors.Is(err, accountdomain.ErrInvalidEmail),
		errors.Is(err, accountdomain.ErrTargetRequired),
		errors.Is(err, accountdomain.ErrInvalidTarget),
		errors.Is(err, accountdomain.ErrCannotDeleteSelf),
		errors.Is(err, profiledomain.ErrInvalidDivision),
		errors.Is(err, profiledomain.ErrInvalidName),
		errors.Is(err, profiledomain.ErrInvalidRole),
		errors.Is(err, activitydomain.ErrInvalidCustomer),
		errors.Is(err, activitydomain.ErrInvalidType),
		errors.Is(err, salesrecorddomain.ErrInvalidCustomer),
		errors.Is(err, salesrecorddomain.ErrInvalidAmount),
		errors.Is(err, salesrecorddomain.ErrInvalidMargin),
		errors.Is(err, salestargetdomain.ErrInvalidTarget),
		errors.Is(err, salestargetdomain.ErrInvalidPeriod),
		errors.Is(err, scheduledomain.ErrInvalidWindow),
		errors.Is(err, scheduledomain.ErrInvalidTitle),
		errors.Is(err, messagedomain.ErrEmptyBody),
		errors.Is(err, notificationdomain.ErrEmptyTitle),
		errors.Is(err, teamdomain.ErrInvalidName),
		errors.Is(err, auditdomain.ErrInvalidAction),
		errors.Is(err, auditdomain.ErrInvalidTimeRange):
		return http.StatusBadRequest, errorPayload{Type: "bad_request", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorPayload{Type: "internal", Message: "internal server error"}
}

// classifyErrorForLog feeds the request logger's error_type/error_code fields.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		return "internal", strings.TrimSpace(err.Error())
	}
	return payload.Type, payload.Message
}
