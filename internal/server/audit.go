package server

import (
	"net/http"
	"strings"
	"time"

	auditdomain "github.com/fieldscope/fieldscope/internal/audit/domain"
	"github.com/fieldscope/fieldscope/internal/authorization"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	"github.com/gin-gonic/gin"
)

// ListAuditLogs exposes the audit trail to managers.
func (s *Server) ListAuditLogs(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	ctx := c.Request.Context()
	actor := "user:" + callerID.String()
	if err := s.authzSvc.Authorize(ctx, actor, authorization.ObjectAuditLog, authorization.ActionAuditLogView); err != nil {
		AbortWithError(c, err)
		return
	}

	filter := auditdomain.ListFilter{
		Action:     strings.TrimSpace(c.Query("action")),
		TargetType: strings.TrimSpace(c.Query("target_type")),
		TargetID:   strings.TrimSpace(c.Query("target_id")),
		Limit:      parseIntQuery(c, "limit", 0),
	}

	if raw := strings.TrimSpace(c.Query("start_at")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, &ValidationErrors{Fields: map[string]string{"start_at": "must be RFC3339"}})
			return
		}
		filter.StartAt = &t
	}
	if raw := strings.TrimSpace(c.Query("end_at")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, &ValidationErrors{Fields: map[string]string{"end_at": "must be RFC3339"}})
			return
		}
		filter.EndAt = &t
	}

	entries, err := s.auditSvc.List(ctx, filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audit_logs": entries})
}
