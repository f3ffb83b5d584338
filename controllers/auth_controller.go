package controllers

import (
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/whistle-guardian/api-go/models"
	"github.com/whistle-guardian/api-go/utils"
)

const (
	accessTokenTTL  = time.Hour * 24 * 7
	refreshTokenTTL = time.Hour * 24 * 30
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// validateUsername checks format constraints before hitting the unique index.
func validateUsername(username string) string {
	trimmed := strings.TrimSpace(username)
	if len(trimmed) < 3 {
		return "username must be at least 3 characters long"
	}
	if len(trimmed) > 20 {
		return "username must be no more than 20 characters long"
	}
	if !usernamePattern.MatchString(trimmed) {
		return "username must start with a letter and contain only letters, numbers, and underscores"
	}
	return ""
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if msg := validateUsername(input.Username); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg, "success": false})
		return
	}

	var existing models.User
	if err := ac.DB.Where("email = ? OR username = ?", input.Email, input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists", "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		// Unique index race with the existence check above.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(user.ID)
	if err != nil {
		zap.S().Errorw("failed to sign tokens", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: time.Now().Add(refreshTokenTTL),
	})

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "username": user.Username},
		"success":       true,
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var refreshToken models.RefreshToken
	if err := ac.DB.Where("token = ?", input.RefreshToken).First(&refreshToken).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "success": false})
		return
	}

	if time.Now().After(refreshToken.ExpirationDate) {
		ac.DB.Delete(&refreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired", "success": false})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, refreshToken.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "success": false})
		return
	}

	accessToken, newRefreshToken, err := ac.issueTokens(user.ID)
	if err != nil {
		zap.S().Errorw("failed to sign tokens", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	refreshToken.Token = newRefreshToken
	refreshToken.ExpirationDate = time.Now().Add(refreshTokenTTL)
	ac.DB.Save(&refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "username": user.Username},
		"success":       true,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	// Token not found still reports success; logout is idempotent.
	ac.DB.Where("token = ?", input.RefreshToken).Delete(&models.RefreshToken{})

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully", "success": true})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":                 dbUser.ID,
			"username":           dbUser.Username,
			"email":              dbUser.Email,
			"bio":                dbUser.Bio,
			"avatar_url":         dbUser.AvatarURL,
			"rating":             dbUser.Rating,
			"completed_bounties": dbUser.CompletedBounties,
			"created_at":         dbUser.CreatedAt,
		},
	})
}

func (ac *AuthController) issueTokens(userID uint) (string, string, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))

	accessTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	})
	accessToken, err := accessTokenBase.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refreshTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(refreshTokenTTL).Unix(),
	})
	refreshToken, err := refreshTokenBase.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
