package main

import (
	"github.com/gin-gonic/gin"
	"github.com/linktower/linktower/pkg/linktower/auth"
	"github.com/linktower/linktower/pkg/linktower/config"
	"github.com/linktower/linktower/pkg/linktower/database"
	"github.com/linktower/linktower/pkg/linktower/discover"
	"github.com/linktower/linktower/pkg/linktower/floors"
	"github.com/linktower/linktower/pkg/linktower/models"
	"github.com/linktower/linktower/pkg/linktower/rooms"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg.DBPath); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	logrus.Info("Database migrations completed")

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "linktower",
			})
		})

		// Rooms routes; unlock tokens are optional and only gate deletes
		roomsHandler := rooms.NewHandler(database.GetDB(), cfg.BaseURL)
		roomsHandler.RegisterRoutes(api.Group("", auth.OptionalRoomToken()))

		// Floor listings
		floorsHandler := floors.NewHandler(database.GetDB())
		floorsHandler.RegisterRoutes(api.Group(""))

		// Discovery
		discoverHandler := discover.NewHandler(database.GetDB())
		discoverHandler.RegisterRoutes(api.Group(""))
	}

	logrus.WithField("port", cfg.Port).Info("Starting Linktower server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
