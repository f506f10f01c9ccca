package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/middleware"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/internal/services"
	"github.com/maarriet/costa-rica-tourism-system/internal/utils"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authSvc  *services.AuthService
	userRepo *database.UserRepository
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *services.AuthService, userRepo *database.UserRepository) *AuthHandler {
	return &AuthHandler{
		authSvc:  authSvc,
		userRepo: userRepo,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.authSvc.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, tokens, err := h.authSvc.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	device := utils.ParseUserAgent(c.Request.UserAgent())
	logrus.WithFields(logrus.Fields{
		"email":       user.Email,
		"ip":          utils.GetRealIP(c),
		"device_type": device.DeviceType,
		"os":          device.OS,
		"browser":     device.Browser,
	}).Info("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	tokens, err := h.authSvc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired refresh token",
			Code:    "INVALID_REFRESH_TOKEN",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		unauthorizedContext(c)
		return
	}

	user, err := h.userRepo.GetByID(userCtx.UserID.String())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
