package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cluedeck/trivia-backend/config"
	"github.com/cluedeck/trivia-backend/models"
	"github.com/cluedeck/trivia-backend/utils/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CurrentUserKey = "currentUser"

// UserFinder resolves a user by email. Implementations must match the
// address case-insensitively and return (nil, nil) when no user exists.
// Handlers and tests get their own finder, so nothing here is tied to the
// real database.
type UserFinder func(email string) (*models.User, error)

// DBUserFinder looks callers up in the main database.
func DBUserFinder(email string) (*models.User, error) {
	var user models.User
	err := config.DB.Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// BasicAuth authenticates the request with HTTP Basic credentials and puts
// the resolved user on the context. Every failure answers 401 with the same
// body, so callers cannot probe which emails exist.
func BasicAuth(find UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, pass, ok := c.Request.BasicAuth()
		if !ok {
			deny(c, "auth header not found")
			return
		}

		user, err := find(email)
		if err != nil {
			logger.Errorf("auth lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		if user == nil {
			deny(c, "user not found for "+email)
			return
		}
		if !user.CheckPassword(pass) {
			deny(c, "bad password for "+user.Email)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the caller when valid credentials are present but
// never rejects the request. Used by the open message endpoint to link
// feedback to an account when there is one.
func OptionalAuth(find UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email, pass, ok := c.Request.BasicAuth(); ok {
			if user, err := find(email); err == nil && user != nil && user.CheckPassword(pass) {
				c.Set(CurrentUserKey, user)
			}
		}
		c.Next()
	}
}

// AdminRequired gates a route to admin users. Must run after BasicAuth.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by BasicAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CurrentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func deny(c *gin.Context, reason string) {
	logger.Warnf("authentication failure: %s", reason)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
}
