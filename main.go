package main

import (
	"time"

	"MenuLens/config/database"
	"MenuLens/middleware"
	v1 "MenuLens/routes/v1"

	"MenuLens/config/environment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment values")
	}

	// Firestore init
	database.InitFirebase()

	// Setup Gin router
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())

	// CORS Middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Register all routes
	v1.RegisterRoutes(r)

	port := environment.GetPort()
	logrus.Infof("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.Fatalf("Server stopped: %v", err)
	}
}
