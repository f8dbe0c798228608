package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cluedeck/trivia-backend/config"
	"github.com/cluedeck/trivia-backend/models"
	"github.com/cluedeck/trivia-backend/utils/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultCardLimit = 50

type cardRequest struct {
	Clue       *string `json:"clue"`
	Answer     *string `json:"answer"`
	Hint       *string `json:"hint"`
	Definition *string `json:"definition"`
	Category   *string `json:"category"`
}

// ListCards returns up to `limit` random cards, optionally filtered by a
// comma-separated `categories` query. Public.
func ListCards(c *gin.Context) {
	limit := defaultCardLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	q := config.DB.Order("RANDOM()").Limit(limit)
	if raw := c.Query("categories"); raw != "" {
		q = q.Where("category IN ?", strings.Split(raw, ","))
	}

	var cards []models.Card
	if err := q.Find(&cards).Error; err != nil {
		logger.Errorf("list cards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// RandomCard returns one random card not yet used by the game in the
// `gameId` query, optionally narrowed by `categories`. Predates the play
// endpoint, kept for older clients that drive the draw themselves.
func RandomCard(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Query("gameId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"A gameId is required"}})
		return
	}

	var g models.Game
	if err := config.DB.First(&g, uint(gameID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
			return
		}
		logger.Errorf("load game %d: %v", gameID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	q := config.DB.Order("RANDOM()")
	if len(g.UsedCards) > 0 {
		q = q.Where("id NOT IN ?", []int64(g.UsedCards))
	}
	if raw := c.Query("categories"); raw != "" {
		q = q.Where("category IN ?", strings.Split(raw, ","))
	}

	var card models.Card
	if err := q.First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No cards found"})
			return
		}
		logger.Errorf("random card: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, card)
}

// CreateCard adds a card to the deck. Admin only.
func CreateCard(c *gin.Context) {
	var card models.Card
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}
	card.ID = 0

	if errs := card.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := config.DB.Create(&card).Error; err != nil {
		logger.Errorf("create card: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/cards/%d", card.ID))
	c.Status(http.StatusCreated)
}

// UpdateCard edits an existing card. Admin only.
func UpdateCard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid card id"}})
		return
	}

	var card models.Card
	if err := config.DB.First(&card, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Card not found"})
			return
		}
		logger.Errorf("load card %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}
	if req.Clue != nil {
		card.Clue = *req.Clue
	}
	if req.Answer != nil {
		card.Answer = *req.Answer
	}
	if req.Hint != nil {
		card.Hint = *req.Hint
	}
	if req.Definition != nil {
		card.Definition = *req.Definition
	}
	if req.Category != nil {
		card.Category = *req.Category
	}

	if errs := card.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := config.DB.Save(&card).Error; err != nil {
		logger.Errorf("update card %d: %v", card.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteCard removes a card permanently. Admin only.
func DeleteCard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid card id"}})
		return
	}

	var card models.Card
	if err := config.DB.First(&card, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Card not found"})
			return
		}
		logger.Errorf("load card %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if err := config.DB.Delete(&card).Error; err != nil {
		logger.Errorf("delete card %d: %v", card.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.Status(http.StatusNoContent)
}
