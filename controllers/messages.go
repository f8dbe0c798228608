package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cluedeck/trivia-backend/config"
	"github.com/cluedeck/trivia-backend/middleware"
	"github.com/cluedeck/trivia-backend/models"
	"github.com/cluedeck/trivia-backend/utils/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type messageRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Rating  *int   `json:"rating"`
}

// ListMessages returns all feedback, optionally filtered by `type`,
// newest first. Admin only.
func ListMessages(c *gin.Context) {
	q := config.DB.Order("created_at DESC")
	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}

	var messages []models.Message
	if err := q.Find(&messages).Error; err != nil {
		logger.Errorf("list messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetMessage returns one message by id. Admin only.
func GetMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid message id"}})
		return
	}

	var msg models.Message
	if err := config.DB.First(&msg, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logger.Errorf("get message %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, msg)
}

// CreateMessage records feedback. Open to anonymous callers; when valid
// credentials accompany the request the message is linked to that account.
func CreateMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	msg := models.Message{
		Subject: req.Subject,
		Body:    req.Message,
		Type:    req.Type,
		Rating:  req.Rating,
	}
	if user := middleware.CurrentUser(c); user != nil {
		msg.UserID = &user.ID
	}

	if errs := msg.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := config.DB.Create(&msg).Error; err != nil {
		logger.Errorf("create message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/messages/%d", msg.ID))
	c.Status(http.StatusCreated)
}

// DeleteMessage removes a message. Admin only.
func DeleteMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid message id"}})
		return
	}

	var msg models.Message
	if err := config.DB.First(&msg, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
			return
		}
		logger.Errorf("load message %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if err := config.DB.Delete(&msg).Error; err != nil {
		logger.Errorf("delete message %d: %v", msg.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.Status(http.StatusNoContent)
}
