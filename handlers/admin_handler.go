package handlers

import (
	"MenuLens/controllers"
	"MenuLens/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAdminRoutes(router *gin.RouterGroup, adminController *controllers.AdminController) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware())
	{
		adminGroup.DELETE("/menus", adminController.ClearAllMenus)
		adminGroup.POST("/cleanup/menus", adminController.CleanupOldMenus)
		adminGroup.POST("/cleanup/images", adminController.CleanupOldImageRecords)
	}
}
