package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cluedeck/trivia-backend/config"
	"github.com/cluedeck/trivia-backend/game"
	"github.com/cluedeck/trivia-backend/middleware"
	"github.com/cluedeck/trivia-backend/models"
	"github.com/cluedeck/trivia-backend/utils/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Engine drives the play endpoint. Wired in main; tests swap in an engine
// over a fake store.
var Engine *game.Engine

type createGameRequest struct {
	Interactive bool     `json:"interactive"`
	Categories  []string `json:"categories"`
}

// ListGames returns the caller's games, newest first.
func ListGames(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var games []models.Game
	if err := config.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&games).Error; err != nil {
		logger.Errorf("list games for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, games)
}

// LastGame returns the caller's most recent game.
func LastGame(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var g models.Game
	err := config.DB.Where("user_id = ?", user.ID).Order("created_at DESC").First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Errorf("last game for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, g)
}

// GetGame returns one of the caller's games by id. Games owned by other
// users are indistinguishable from missing ones.
func GetGame(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid game id"}})
		return
	}

	var g models.Game
	err = config.DB.Where("id = ? AND user_id = ?", uint(id), user.ID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Errorf("get game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, g)
}

// CreateGame starts a new session for the caller. Status and score are
// never taken from the request.
func CreateGame(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	g := models.Game{
		UserID:      user.ID,
		Status:      models.StatusPlaying,
		Interactive: req.Interactive,
		Categories:  req.Categories,
		UsedCards:   []int64{},
	}
	if errs := g.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := config.DB.Create(&g).Error; err != nil {
		logger.Errorf("create game for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/games/%d", g.ID))
	c.JSON(http.StatusCreated, gin.H{"id": g.ID})
}

// PlayGame records a play and returns the next card, or the completed game
// when the deck is exhausted.
func PlayGame(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid game id"}})
		return
	}

	var play game.PlayRequest
	if err := c.ShouldBindJSON(&play); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	result, err := Engine.ApplyPlay(c.Request.Context(), uint(id), user.ID, play)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, game.ErrInvalidPlay):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
	case errors.Is(err, game.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
	case errors.Is(err, game.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	case errors.Is(err, game.ErrGameCompleted), errors.Is(err, game.ErrCardUsed):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		logger.Errorf("play on game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}

// DeleteGame removes one of the caller's games.
func DeleteGame(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid game id"}})
		return
	}

	var g models.Game
	if err := config.DB.First(&g, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
			return
		}
		logger.Errorf("load game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if g.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	if err := config.DB.Delete(&g).Error; err != nil {
		logger.Errorf("delete game %d: %v", g.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.Status(http.StatusNoContent)
}
