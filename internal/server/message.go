package server

import (
	"net/http"

	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	messagedomain "github.com/fieldscope/fieldscope/internal/message/domain"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type postMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (s *Server) PostMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	message, err := s.messageSvc.Post(c.Request.Context(), userID, req.Body)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

func (s *Server) ListMessages(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"query": err.Error()}})
		return
	}

	messages, pageInfo, err := s.messageSvc.List(c.Request.Context(), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":  messages,
		"page_info": pageInfo,
	})
}

func (s *Server) MarkMessageRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	messageID, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, messagedomain.ErrMessageNotFound)
		return
	}

	if err := s.messageSvc.MarkRead(c.Request.Context(), userID, messageID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) UnreadMessageCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	count, err := s.messageSvc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
