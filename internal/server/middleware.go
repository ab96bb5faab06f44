package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	"github.com/gin-gonic/gin"
)

const ctxUserIDKey = "user_id"

// AuthRequired resolves the bearer token to a session and stores the caller
// id on the context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortWithError(c, identitydomain.ErrInvalidSession)
			return
		}

		session, err := s.identitySvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(ctxUserIDKey, session.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return header
}

func currentUserID(c *gin.Context) (snowflake.ID, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(snowflake.ID)
	return id, ok
}

// adminCORS applies the permissive headers the admin endpoints promise to
// browser clients.
func adminCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Next()
	}
}

func adminPreflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// adminRateLimited throttles the privileged endpoints per caller IP. A nil
// bucket (no redis configured) lets everything through.
func (s *Server) adminRateLimited() gin.HandlerFunc {
	const (
		adminRate  = 1.0
		adminBurst = 10
	)

	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:admin:%s", c.ClientIP())
		res, err := s.adminLimiter.Allow(c.Request.Context(), key, adminRate, adminBurst)
		if err != nil {
			// Redis trouble should not lock operators out of account
			// administration.
			c.Next()
			return
		}
		if !res.Allowed {
			s.metrics.RecordRateLimitDenied(c.Request.Context(), c.FullPath())
			c.Header("Retry-After", fmt.Sprintf("%d", int(res.RetryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		s.metrics.RecordRateLimitAllowed(c.Request.Context(), c.FullPath())
		c.Next()
	}
}
