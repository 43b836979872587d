package handlers

import (
	"MenuLens/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterMenuRoutes(router *gin.RouterGroup, menuController *controllers.MenuController) {
	menuGroup := router.Group("/menus")
	{
		menuGroup.POST("/extract", menuController.ExtractMenu)
		menuGroup.POST("", menuController.SaveMenu)

		menuGroup.GET("/:id", menuController.GetMenuByID)
		menuGroup.GET("/:id/images/progress", menuController.GetImageProgress)
		menuGroup.GET("/:id/images/progress/stream", menuController.StreamImageProgress)
	}
}
