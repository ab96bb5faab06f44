package server

import (
	"net/http"
	"time"

	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	profiledomain "github.com/fieldscope/fieldscope/internal/profile/domain"
	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Division string `json:"division"`
	Phone    string `json:"phone"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	division := profiledomain.Division(req.Division)
	if req.Division == "" {
		division = profiledomain.DivisionSales
	}
	if !division.Valid() {
		AbortWithError(c, profiledomain.ErrInvalidDivision)
		return
	}

	ctx := c.Request.Context()
	user, err := s.identitySvc.CreateUser(ctx, identitydomain.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if _, err := s.profileSvc.Create(ctx, profiledomain.CreateProfileRequest{
		UserID:   user.ID,
		FullName: req.FullName,
		Division: division,
		Phone:    req.Phone,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	result, err := s.identitySvc.Login(c.Request.Context(), identitydomain.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         toUserResponse(result.User),
		"access_token": result.RawToken,
		"expires_at":   result.ExpiresAt,
	})
}

func (s *Server) Logout(c *gin.Context) {
	token := bearerToken(c)
	if err := s.identitySvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	user, err := s.identitySvc.GetUser(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

func (s *Server) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, identitydomain.ErrInvalidSession)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, &ValidationErrors{Fields: map[string]string{"body": err.Error()}})
		return
	}

	if err := s.identitySvc.ChangePassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func toUserResponse(user *identitydomain.User) userResponse {
	return userResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
