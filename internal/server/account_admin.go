package server

import (
	"errors"
	"net/http"

	accountdomain "github.com/fieldscope/fieldscope/internal/account/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

// The admin endpoints speak a flat {"error": "..."} dialect kept compatible
// with the dashboard client, so they do not go through the API envelope.

type deleteUserRequest struct {
	TargetUserID string `json:"targetUserId"`
}

type updateUserEmailRequest struct {
	TargetUserID string `json:"targetUserId"`
	NewEmail     string `json:"newEmail"`
}

func (s *Server) AdminDeleteUser(c *gin.Context) {
	callerID, ok := s.adminCaller(c)
	if !ok {
		return
	}

	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing targetUserId"})
		return
	}

	if err := s.accountSvc.DeleteAccount(c.Request.Context(), callerID, req.TargetUserID); err != nil {
		status, message := adminErrorForDelete(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	s.metrics.RecordAccountDelete(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

func (s *Server) AdminUpdateUserEmail(c *gin.Context) {
	callerID, ok := s.adminCaller(c)
	if !ok {
		return
	}

	var req updateUserEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing targetUserId"})
		return
	}

	user, err := s.accountSvc.UpdateEmail(c.Request.Context(), callerID, req.TargetUserID, req.NewEmail)
	if err != nil {
		status, message := adminErrorForUpdateEmail(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	s.metrics.RecordEmailUpdate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":    user.ID.String(),
			"email": user.Email,
		},
	})
}

// adminCaller authenticates the bearer token for the admin endpoints. The
// missing-header case is answered before any session lookup happens.
func (s *Server) adminCaller(c *gin.Context) (snowflake.ID, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization header"})
		return 0, false
	}

	token := bearerToken(c)
	session, err := s.identitySvc.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}

	return session.UserID, true
}

func adminErrorForDelete(err error) (int, string) {
	switch {
	case errors.Is(err, accountdomain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, accountdomain.ErrManagerRequired):
		return http.StatusForbidden, "Only managers can delete users"
	case errors.Is(err, accountdomain.ErrTargetRequired),
		errors.Is(err, accountdomain.ErrInvalidTarget):
		return http.StatusBadRequest, "Missing targetUserId"
	case errors.Is(err, accountdomain.ErrCannotDeleteSelf):
		return http.StatusBadRequest, "Cannot delete your own account"
	case errors.Is(err, accountdomain.ErrSuperadminProtected):
		return http.StatusForbidden, "Cannot delete superadmin accounts"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func adminErrorForUpdateEmail(err error) (int, string) {
	switch {
	case errors.Is(err, accountdomain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, accountdomain.ErrManagerRequired):
		return http.StatusForbidden, "Only managers can update user emails"
	case errors.Is(err, accountdomain.ErrTargetRequired),
		errors.Is(err, accountdomain.ErrInvalidTarget):
		return http.StatusBadRequest, "Missing targetUserId"
	case errors.Is(err, accountdomain.ErrSuperadminProtected):
		return http.StatusForbidden, "Cannot update superadmin accounts"
	case errors.Is(err, accountdomain.ErrInvalidEmail):
		return http.StatusBadRequest, "Invalid email"
	case errors.Is(err, accountdomain.ErrEmailTaken):
		return http.StatusBadRequest, "Email already in use"
	}
	return http.StatusInternalServerError, "Internal server error"
}
