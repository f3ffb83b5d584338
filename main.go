package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/whistle-guardian/api-go/config"
	"github.com/whistle-guardian/api-go/jobs"
	"github.com/whistle-guardian/api-go/queue"
	"github.com/whistle-guardian/api-go/routes"
)

func main() {
	logger := config.InitLogger()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		// Fine in production where config comes from the environment.
		zap.S().Debugw("no .env file loaded", "error", err)
	}

	// Initialize database
	db := config.InitDB()

	// Notification events are mirrored to RabbitMQ when a broker is
	// configured; without one the publisher stays nil and events are
	// inbox-only.
	var publisher *queue.Publisher
	if amqpURI := os.Getenv("RABBITMQ_URL"); amqpURI != "" {
		var err error
		publisher, err = queue.Connect(amqpURI)
		if err != nil {
			zap.S().Warnw("rabbitmq unavailable, notification events disabled", "error", err)
		} else {
			defer publisher.Close()
		}
	}

	// Keep the cached supporters counters honest.
	reconciler := jobs.StartReconciler(db)
	defer reconciler.Stop()

	// Create a new Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = []string{origins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Initialize routes
	routes.SetupRoutes(r, db, publisher)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zap.S().Infow("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		zap.S().Fatalw("server exited", "error", err)
	}
}
