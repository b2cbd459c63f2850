package handlers

import (
	"hackmate-backend/database"
	"hackmate-backend/models"
	"hackmate-backend/services"
	"hackmate-backend/utils"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=30,alphanum"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"max=100"`
	Bio      string `json:"bio" binding:"max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// POST /auth/register
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	// Check if email or username is already taken
	var existingUser models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.Conflict(c, "Email already registered")
		return
	}
	if err := database.DB.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		utils.Conflict(c, "Username already taken")
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "Failed to hash password")
		return
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		Name:         req.Name,
		Bio:          req.Bio,
		PasswordHash: string(hashedPassword),
		VerifyToken:  utils.GenerateSecureToken(),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		utils.InternalError(c, "Failed to create user")
		return
	}

	go services.GetNotificationService().SendVerificationEmail(user.Email, user.Name, user.VerifyToken)

	// Generate JWT
	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Registration successful", AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	})
}

// POST /auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	})
}

// POST /auth/verify-email
func VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("verify_token = ?", req.Token).First(&user).Error; err != nil {
		utils.BadRequest(c, "Invalid or expired verification token")
		return
	}

	database.DB.Model(&user).Updates(map[string]interface{}{
		"email_verified": true,
		"verify_token":   "",
	})

	utils.SuccessResponse(c, http.StatusOK, "Email verified", nil)
}

// POST /auth/forgot-password
func ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// Always answer the same way so the endpoint can't be used to probe
	// which emails are registered.
	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err == nil {
		expiry := time.Now().Add(time.Hour)
		resetToken := utils.GenerateSecureToken()
		database.DB.Model(&user).Updates(map[string]interface{}{
			"reset_token":  resetToken,
			"reset_expiry": expiry,
		})
		go services.GetNotificationService().SendPasswordResetEmail(user.Email, user.Name, resetToken)
	}

	utils.SuccessResponse(c, http.StatusOK, "If that email is registered, a reset link has been sent", nil)
}

// POST /auth/reset-password
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
		utils.BadRequest(c, "Invalid or expired reset token")
		return
	}
	if user.ResetExpiry == nil || user.ResetExpiry.Before(time.Now()) {
		utils.BadRequest(c, "Invalid or expired reset token")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "Failed to hash password")
		return
	}

	database.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash": string(hashedPassword),
		"reset_token":   "",
		"reset_expiry":  nil,
	})

	utils.SuccessResponse(c, http.StatusOK, "Password reset successful", nil)
}

// POST /api/auth/change-password
func ChangePassword(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		utils.Unauthorized(c, "Current password is incorrect")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "Failed to hash password")
		return
	}

	database.DB.Model(&user).Update("password_hash", string(hashedPassword))

	utils.SuccessResponse(c, http.StatusOK, "Password changed", nil)
}
