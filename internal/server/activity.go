package server

import (
	"net/http"
	"time"

	activitydomain "github.com/fieldscope/fieldscope/internal/activity/domain"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createActivityRequest struct {
	CustomerName string    `json:"customer_name" binding:"required"`
	Type         string    `json:"type" binding:"required"`
	Notes        string    `json:"notes"`
	OccurredAt   time.Time `json:"occurred_at" binding:"required"`
}

func (s *Server) CreateActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	activity, err := s.activitySvc.Create(c.Request.Context(), activitydomain.CreateActivityRequest{
		UserID:       userID,
		CustomerName: req.CustomerName,
		Type:         activitydomain.Type(req.Type),
		Notes:        req.Notes,
		OccurredAt:   req.OccurredAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

func (s *Server) ListActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"query": err.Error()}})
		return
	}

	filter := activitydomain.ListActivityFilter{
		UserID: userID,
		Type:   activitydomain.Type(c.Query("type")),
	}

	activities, pageInfo, err := s.activitySvc.List(c.Request.Context(), filter, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"page_info":  pageInfo,
	})
}

func (s *Server) GetActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, activitydomain.ErrActivityNotFound)
		return
	}

	activity, err := s.activitySvc.Get(c.Request.Context(), userID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

type updateActivityRequest struct {
	CustomerName *string    `json:"customer_name"`
	Type         *string    `json:"type"`
	Notes        *string    `json:"notes"`
	OccurredAt   *time.Time `json:"occurred_at"`
}

func (s *Server) UpdateActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, activitydomain.ErrActivityNotFound)
		return
	}

	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	var activityType *activitydomain.Type
	if req.Type != nil {
		t := activitydomain.Type(*req.Type)
		activityType = &t
	}

	activity, err := s.activitySvc.Update(c.Request.Context(), userID, id, activitydomain.UpdateActivityRequest{
		CustomerName: req.CustomerName,
		Type:         activityType,
		Notes:        req.Notes,
		OccurredAt:   req.OccurredAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func (s *Server) DeleteActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, activitydomain.ErrActivityNotFound)
		return
	}

	if err := s.activitySvc.Delete(c.Request.Context(), userID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
