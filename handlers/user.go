package handlers

import (
	"net/http"
	"strings"

	"opaleka/middleware"
	"opaleka/models"
	"opaleka/services/user"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register handles POST /auth/register.
func Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	u, err := UserService.Register(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("user registered", zap.String("userID", u.ID), zap.String("role", u.Role))
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": u.PublicView()})
}

// Login handles POST /auth/login.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	result, err := UserService.Login(req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      result.User.PublicView(),
	})
}

// Logout handles POST /auth/logout: revokes the presented token.
func Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if err := UserService.Logout(token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out."})
}

// Me handles GET /auth/me.
func Me(c *gin.Context) {
	u, err := UserService.GetByID(c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

// UpdateProfile handles PUT /auth/profile.
func UpdateProfile(c *gin.Context) {
	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	u, err := UserService.UpdateProfile(c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

// ChangePassword handles PUT /auth/password.
func ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	if err := UserService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated."})
}

// SaveCompleteProfile handles PUT /auth/complete-profile.
func SaveCompleteProfile(c *gin.Context) {
	var profile models.CompleteProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	if err := UserService.SaveCompleteProfile(userID, &profile); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// GetCompleteProfile handles GET /auth/complete-profile.
func GetCompleteProfile(c *gin.Context) {
	profile, err := UserService.CompleteProfile(c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}
