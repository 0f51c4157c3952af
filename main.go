package main

import (
	"net/http"
	"os"

	"foodshare-api/config"
	"foodshare-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load .env for local development (deployment injects env vars itself)
	_ = godotenv.Load()

	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	if err := config.InitDB(config.DBPath()); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	// Gin with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "FoodShare API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the FoodShare surplus donation API",
			"docs":    "/api/lifecycle",
			"health":  "/health",
			"roles":   []string{"restaurant", "ngo", "admin"},
		})
	})

	// Uploaded donation images
	r.Static("/static/uploads", config.UploadDir)

	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("server running")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
