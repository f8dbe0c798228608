package main

import (
	"net/http"
	"os"
	"time"

	"github.com/cluedeck/trivia-backend/config"
	"github.com/cluedeck/trivia-backend/controllers"
	"github.com/cluedeck/trivia-backend/game"
	"github.com/cluedeck/trivia-backend/middleware"
	"github.com/cluedeck/trivia-backend/routes"
	"github.com/cluedeck/trivia-backend/services"
	"github.com/cluedeck/trivia-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env variables
	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found, reading environment variables")
	}

	// Connect to database and seed the starter deck
	db := config.SetupDatabase()
	if err := services.SeedDeck(db, os.Getenv("DECK_FILE")); err != nil {
		logger.Fatalf("deck seeding failed: %v", err)
	}

	// Live websocket feed + session engine
	hub := services.InitLiveHub()
	controllers.Engine = game.NewEngine(game.NewSQLStore(db), hub)

	r := gin.Default()
	r.Use(cors.Default()) // all origins, like the API has always allowed

	routes.SetupRoutes(r, middleware.DBUserFinder)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Infof("trivia backend listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
