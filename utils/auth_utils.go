package utils

import (
	"github.com/gin-gonic/gin"
)

type UserClaims struct {
	UserID uint `json:"user_id"`
}

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the claims set by the auth middleware, or nil on an
// unauthenticated request.
func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}
