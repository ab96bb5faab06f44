package server

import (
	"net/http"

	"github.com/fieldscope/fieldscope/internal/authorization"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	profiledomain "github.com/fieldscope/fieldscope/internal/profile/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	profile, err := s.profileSvc.Get(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

func (s *Server) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	profile, err := s.profileSvc.Update(c.Request.Context(), userID, profiledomain.UpdateProfileRequest{
		FullName:  req.FullName,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type setDivisionRequest struct {
	Division string `json:"division" binding:"required"`
}

// SetDivision moves a user between divisions. Manager-gated because
// division is what the authorization layer derives capabilities from.
func (s *Server) SetDivision(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"userId": "invalid user id"}})
		return
	}

	var req setDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	division := profiledomain.Division(req.Division)
	if !division.Valid() {
		AbortWithError(c, profiledomain.ErrInvalidDivision)
		return
	}

	ctx := c.Request.Context()
	actor := "user:" + callerID.String()
	if err := s.authzSvc.Authorize(ctx, actor, authorization.ObjectDivision, authorization.ActionDivisionSet); err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.profileSvc.SetDivision(ctx, targetID, division); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
