package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	scheduledomain "github.com/fieldscope/fieldscope/internal/schedule/domain"
	"github.com/gin-gonic/gin"
)

type bookScheduleRequest struct {
	CollaboratorID string    `json:"collaborator_id" binding:"required"`
	Title          string    `json:"title" binding:"required"`
	CustomerName   string    `json:"customer_name"`
	StartAt        time.Time `json:"start_at" binding:"required"`
	EndAt          time.Time `json:"end_at" binding:"required"`
}

func (s *Server) BookSchedule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var req bookScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	collaboratorID, err := snowflake.ParseString(req.CollaboratorID)
	if err != nil || collaboratorID == 0 {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"collaborator_id": "invalid user id"}})
		return
	}

	schedule, err := s.scheduleSvc.Book(c.Request.Context(), scheduledomain.BookRequest{
		OwnerID:        userID,
		CollaboratorID: collaboratorID,
		Title:          req.Title,
		CustomerName:   req.CustomerName,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"schedule": schedule})
}

func (s *Server) ScheduleAvailability(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	collaboratorID, err := snowflake.ParseString(c.Query("collaborator_id"))
	if err != nil || collaboratorID == 0 {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"collaborator_id": "invalid user id"}})
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"from": "must be RFC3339"}})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"to": "must be RFC3339"}})
		return
	}

	schedules, err := s.scheduleSvc.Availability(c.Request.Context(), collaboratorID, from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

func (s *Server) CancelSchedule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, scheduledomain.ErrScheduleNotFound)
		return
	}

	if err := s.scheduleSvc.Cancel(c.Request.Context(), userID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
