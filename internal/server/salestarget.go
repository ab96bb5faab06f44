package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/authorization"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	salestargetdomain "github.com/fieldscope/fieldscope/internal/salestarget/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type setSalesTargetRequest struct {
	UserID       string          `json:"user_id" binding:"required"`
	Year         int             `json:"year" binding:"required"`
	Month        int             `json:"month" binding:"required"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
}

// SetSalesTarget assigns a monthly target to a user. Manager-gated.
func (s *Server) SetSalesTarget(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var req setSalesTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	targetUserID, err := snowflake.ParseString(req.UserID)
	if err != nil || targetUserID == 0 {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"user_id": "invalid user id"}})
		return
	}

	ctx := c.Request.Context()
	actor := "user:" + callerID.String()
	if err := s.authzSvc.Authorize(ctx, actor, authorization.ObjectSalesTarget, authorization.ActionSalesTargetSet); err != nil {
		AbortWithError(c, err)
		return
	}

	target, err := s.salesTargetSvc.Set(ctx, salestargetdomain.SetTargetRequest{
		UserID:       targetUserID,
		Year:         req.Year,
		Month:        req.Month,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales_target": target})
}

func (s *Server) ListSalesTargets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	targets, err := s.salesTargetSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales_targets": targets})
}
