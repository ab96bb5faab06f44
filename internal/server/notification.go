package server

import (
	"net/http"

	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	notificationdomain "github.com/fieldscope/fieldscope/internal/notification/domain"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListNotifications(c *gin.Context) {
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

	notifications, pageInfo, err := s.notificationSvc.List(c.Request.Context(), userID, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"page_info":     pageInfo,
	})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, notificationdomain.ErrNotificationNotFound)
		return
	}

	if err := s.notificationSvc.MarkRead(c.Request.Context(), userID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
