package server

import (
	"net/http"
	"time"

	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	salesrecorddomain "github.com/fieldscope/fieldscope/internal/salesrecord/domain"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createSalesRecordRequest struct {
	CustomerName string          `json:"customer_name" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Margin       decimal.Decimal `json:"margin" binding:"required"`
	SoldAt       time.Time       `json:"sold_at" binding:"required"`
}

func (s *Server) CreateSalesRecord(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var req createSalesRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	record, err := s.salesRecordSvc.Create(c.Request.Context(), salesrecorddomain.CreateSalesRecordRequest{
		UserID:       userID,
		CustomerName: req.CustomerName,
		Amount:       req.Amount,
		Margin:       req.Margin,
		SoldAt:       req.SoldAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sales_record": record})
}

func (s *Server) ListSalesRecords(c *gin.Context) {
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

	records, pageInfo, err := s.salesRecordSvc.List(c.Request.Context(), userID, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sales_records": records,
		"page_info":     pageInfo,
	})
}

func (s *Server) DeleteSalesRecord(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, salesrecorddomain.ErrRecordNotFound)
		return
	}

	if err := s.salesRecordSvc.Delete(c.Request.Context(), userID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
