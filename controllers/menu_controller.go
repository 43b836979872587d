package controllers

import (
	"net/http"
	"time"

	"MenuLens/models"
	"MenuLens/services"
	"MenuLens/utils"

	"github.com/gin-gonic/gin"
)

// MenuController handles the menu ingestion and read endpoints.
type MenuController struct {
	ExtractionService *services.ExtractionService
	MenuService       *services.MenuService
}

// NewMenuController initializes MenuController with the service layer.
func NewMenuController(extractionService *services.ExtractionService, menuService *services.MenuService) *MenuController {
	return &MenuController{
		ExtractionService: extractionService,
		MenuService:       menuService,
	}
}

// ExtractMenuRequest represents the request payload
type ExtractMenuRequest struct {
	SessionID   string `json:"sessionId" binding:"required"`
	ImageBase64 string `json:"imageBase64" binding:"required"`
}

// SaveMenuRequest represents the explicit-save request payload
type SaveMenuRequest struct {
	SessionID string             `json:"sessionId" binding:"required"`
	Menu      models.MenuPayload `json:"menu" binding:"required"`
}

// ExtractMenu runs the full ingestion pipeline on an uploaded menu photo.
// The response carries the extracted menu; images arrive in the background.
func (ctl *MenuController) ExtractMenu(c *gin.Context) {
	var req ExtractMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "sessionId and imageBase64 are required")
		return
	}

	result, err := ctl.ExtractionService.ExtractAndSave(c.Request.Context(), req.SessionID, req.ImageBase64)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Menu extracted successfully", result)
}

// SaveMenu overwrites the session's menu with a caller-supplied payload.
func (ctl *MenuController) SaveMenu(c *gin.Context) {
	var req SaveMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "sessionId and menu are required")
		return
	}

	saved, err := ctl.MenuService.SaveMenu(c.Request.Context(), req.SessionID, &req.Menu)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Menu saved successfully", saved)
}

// GetMenuByID is the session-scoped read. A missing menu or a session
// mismatch returns null data, not an error.
func (ctl *MenuController) GetMenuByID(c *gin.Context) {
	menuID := c.Param("id")
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "sessionId query parameter is required")
		return
	}

	menu, err := ctl.MenuService.GetMenuByID(c.Request.Context(), menuID, sessionID)
	if err != nil {
		c.Error(err)
		return
	}
	if menu == nil {
		utils.SuccessResponse(c, http.StatusOK, "Menu not found", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Menu fetched successfully", menu)
}

// GetImageProgress returns the aggregate image generation status for polling.
func (ctl *MenuController) GetImageProgress(c *gin.Context) {
	menuID := c.Param("id")
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "sessionId query parameter is required")
		return
	}

	progress, err := ctl.MenuService.GetImageProgress(c.Request.Context(), menuID, sessionID)
	if err != nil {
		c.Error(err)
		return
	}
	if progress == nil {
		utils.SuccessResponse(c, http.StatusOK, "Menu not found", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Progress fetched successfully", progress)
}

// StreamImageProgress pushes progress snapshots over SSE until every record
// reaches a terminal state or the client disconnects.
func (ctl *MenuController) StreamImageProgress(c *gin.Context) {
	menuID := c.Param("id")
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "sessionId query parameter is required")
		return
	}

	// Set response headers for SSE
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		progress, err := ctl.MenuService.GetImageProgress(c.Request.Context(), menuID, sessionID)
		if err != nil {
			c.SSEvent("progress_error", gin.H{"message": err.Error()})
			c.Writer.Flush()
			return
		}
		if progress == nil {
			c.SSEvent("progress_done", gin.H{"statusCode": 404, "message": "Menu not found", "data": nil})
			c.Writer.Flush()
			return
		}

		c.SSEvent("progress", progress)
		c.Writer.Flush()

		if progress.Done() {
			c.SSEvent("progress_done", gin.H{"statusCode": 200, "message": "Image generation finished", "data": progress})
			c.Writer.Flush()
			return
		}

		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
