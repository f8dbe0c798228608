package routes

import (
	"net/http"

	"github.com/cluedeck/trivia-backend/controllers"
	"github.com/cluedeck/trivia-backend/middleware"
	"github.com/cluedeck/trivia-backend/services"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every endpoint. find resolves basic-auth
// credentials; production passes middleware.DBUserFinder.
func SetupRoutes(r *gin.Engine, find middleware.UserFinder) {
	auth := middleware.BasicAuth(find)
	admin := middleware.AdminRequired()

	api := r.Group("/api")

	// ----------------------
	// User routes
	// ----------------------
	api.GET("/users", auth, controllers.GetCurrentUser) // Current account
	api.POST("/users", controllers.RegisterUser)        // Register (open)
	api.PUT("/users/:id", auth, controllers.UpdateUser) // Self-service update

	// ----------------------
	// Game routes
	// ----------------------
	api.GET("/games", auth, controllers.ListGames)          // Caller's games
	api.GET("/games/last", auth, controllers.LastGame)      // Most recent game
	api.GET("/games/:id", auth, controllers.GetGame)        // Single game
	api.POST("/games", auth, controllers.CreateGame)        // Start a session
	api.PUT("/games/:id/play", auth, controllers.PlayGame)  // Record a play, draw next card
	api.DELETE("/games/:id", auth, controllers.DeleteGame)  // Remove a session

	// ----------------------
	// Card routes
	// ----------------------
	api.GET("/cards", controllers.ListCards)                      // Random sample (open)
	api.GET("/cards/random", auth, controllers.RandomCard)        // Legacy single draw
	api.POST("/cards", auth, admin, controllers.CreateCard)       // Add to deck
	api.PUT("/cards/:id", auth, admin, controllers.UpdateCard)    // Edit card
	api.DELETE("/cards/:id", auth, admin, controllers.DeleteCard) // Remove card

	// ----------------------
	// Message routes
	// ----------------------
	api.GET("/messages", auth, admin, controllers.ListMessages)
	api.GET("/messages/:id", auth, admin, controllers.GetMessage)
	api.POST("/messages", middleware.OptionalAuth(find), controllers.CreateMessage)
	api.DELETE("/messages/:id", auth, admin, controllers.DeleteMessage)

	// Websocket live feed for a game session
	r.GET("/ws/games/:id", auth, services.HandleGameWS)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route Not Found"})
	})
}
