package server

import (
	"net/http"
	"time"

	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	"github.com/gin-gonic/gin"
)

// BonusSummary reports the caller's bonus standing for one month. Defaults
// to the current month when year/month are omitted.
func (s *Server) BonusSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	now := time.Now().UTC()
	year := parseIntQuery(c, "year", now.Year())
	month := parseIntQuery(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"month": "must be between 1 and 12"}})
		return
	}

	summary, err := s.bonusSvc.Summary(c.Request.Context(), userID, year, time.Month(month))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
