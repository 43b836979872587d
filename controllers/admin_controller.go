package controllers

import (
	"net/http"

	"MenuLens/services"
	"MenuLens/utils"

	"github.com/gin-gonic/gin"
)

// AdminController exposes the internal-only maintenance operations.
type AdminController struct {
	MenuService *services.MenuService
}

func NewAdminController(menuService *services.MenuService) *AdminController {
	return &AdminController{
		MenuService: menuService,
	}
}

// ClearAllMenus deletes every menu document.
func (ctl *AdminController) ClearAllMenus(c *gin.Context) {
	deleted, err := ctl.MenuService.ClearAllMenus(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Menus cleared", gin.H{"deleted": deleted})
}

// CleanupOldMenus removes menus past retention along with their image records.
func (ctl *AdminController) CleanupOldMenus(c *gin.Context) {
	deletedMenus, deletedImages, err := ctl.MenuService.CleanupOldMenus(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cleanup completed", gin.H{
		"deletedMenus":  deletedMenus,
		"deletedImages": deletedImages,
	})
}

// CleanupOldImageRecords removes stale image generation records.
func (ctl *AdminController) CleanupOldImageRecords(c *gin.Context) {
	deleted, err := ctl.MenuService.CleanupOldImageRecords(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cleanup completed", gin.H{"deleted": deleted})
}
