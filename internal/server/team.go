package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/authorization"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	profiledomain "github.com/fieldscope/fieldscope/internal/profile/domain"
	teamdomain "github.com/fieldscope/fieldscope/internal/team/domain"
	"github.com/gin-gonic/gin"
)

const defaultTeamSlug = "main"

func (s *Server) GetTeam(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	team, err := s.lookupTeam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": team})
}

type updateTeamRequest struct {
	Name     *string `json:"name"`
	Timezone *string `json:"timezone"`
	Currency *string `json:"currency"`
}

func (s *Server) UpdateTeam(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	ctx := c.Request.Context()
	actor := "user:" + callerID.String()
	if err := s.authzSvc.Authorize(ctx, actor, authorization.ObjectTeam, authorization.ActionTeamUpdate); err != nil {
		AbortWithError(c, err)
		return
	}

	team, err := s.lookupTeam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	updated, err := s.teamSvc.Update(ctx, team.ID, teamdomain.UpdateTeamRequest{
		Name:     req.Name,
		Timezone: req.Timezone,
		Currency: req.Currency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": updated})
}

// ListTeamMembers returns the directory for one division.
func (s *Server) ListTeamMembers(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	division := profiledomain.Division(c.Query("division"))
	profiles, err := s.profileSvc.ListByDivision(c.Request.Context(), division)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": profiles})
}

func (s *Server) lookupTeam(c *gin.Context) (*teamdomain.Team, error) {
	ctx := c.Request.Context()
	if s.cfg.DefaultTeamID != 0 {
		return s.teamSvc.Get(ctx, snowflake.ID(s.cfg.DefaultTeamID))
	}
	return s.teamSvc.GetBySlug(ctx, defaultTeamSlug)
}
