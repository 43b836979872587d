package route

import (
	"net/http"

	"MenuLens/config/database"
	"MenuLens/controllers"
	"MenuLens/handlers"
	"MenuLens/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires services, starts the image worker and registers all
// v1 routes.
func RegisterRoutes(router *gin.Engine) {
	logService := services.NewLLMLogService(database.GetFirestoreClient())
	openAIService := services.NewOpenAIService(logService)
	menuService := services.NewMenuService()

	imageService := services.NewImageGenerationService(menuService, openAIService)
	imageService.StartWorker()

	extractionService := services.NewExtractionService(openAIService, menuService, imageService)

	menuController := controllers.NewMenuController(extractionService, menuService)
	adminController := controllers.NewAdminController(menuService)

	v1Routes := router.Group("/v1")
	{
		v1Routes.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		handlers.RegisterMenuRoutes(v1Routes, menuController)
		handlers.RegisterAdminRoutes(v1Routes, adminController)
	}
}
