package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cluedeck/trivia-backend/config"
	"github.com/cluedeck/trivia-backend/middleware"
	"github.com/cluedeck/trivia-backend/models"
	"github.com/cluedeck/trivia-backend/utils/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// registerRequest deliberately has no admin field: accounts can never
// register themselves as admin, whatever the client sends.
type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type updateUserRequest struct {
	FirstName     *string  `json:"firstName"`
	LastName      *string  `json:"lastName"`
	Email         *string  `json:"email"`
	Password      *string  `json:"password"`
	ExcludedCards *[]int64 `json:"excludedCards"`
	FavoriteCards *[]int64 `json:"favoriteCards"`
	Admin         *bool    `json:"admin"`
}

// GetCurrentUser returns the authenticated caller.
func GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"admin":     user.Admin,
	})
}

// RegisterUser creates a new account. Open to unauthenticated callers.
func RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	user.NormalizeEmail()

	errs := user.Validate()
	if req.Password == "" {
		errs = append(errs, "A password is required")
	} else if !models.ValidPassword(req.Password) {
		errs = append(errs, "Password must be at least 8 characters long and contain at least one number and one symbol")
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := user.SetPassword(req.Password); err != nil {
		logger.Errorf("password hash: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"The email you entered already exists"}})
			return
		}
		logger.Errorf("create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.Header("Location", "/")
	c.Status(http.StatusCreated)
}

// UpdateUser lets a user change their own account. The admin flag is
// immutable through this path for everyone, admins included.
func UpdateUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || user.ID != uint(id) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}
	if req.Admin != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "The admin property cannot be changed"})
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
		user.NormalizeEmail()
	}
	if req.ExcludedCards != nil {
		user.ExcludedCards = *req.ExcludedCards
	}
	if req.FavoriteCards != nil {
		user.FavoriteCards = *req.FavoriteCards
	}

	errs := user.Validate()
	if req.Password != nil {
		if !models.ValidPassword(*req.Password) {
			errs = append(errs, "Password must be at least 8 characters long and contain at least one number and one symbol")
		} else if err := user.SetPassword(*req.Password); err != nil {
			logger.Errorf("password hash: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := config.DB.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"The email you entered already exists"}})
			return
		}
		logger.Errorf("update user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.Status(http.StatusNoContent)
}
