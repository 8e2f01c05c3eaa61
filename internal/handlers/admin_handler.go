package handlers

import (
	"net/http"

	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AdminHandler exposes maintenance operations that normally run on a schedule
type AdminHandler struct {
	engagementService services.EngagementService
	storyService      services.StoryService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(engagementService services.EngagementService, storyService services.StoryService) *AdminHandler {
	return &AdminHandler{engagementService: engagementService, storyService: storyService}
}

// RegisterAdminRoutes registers maintenance routes; the group must carry the
// admin middleware.
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/admin/recount", h.Recount)
	g.POST("/admin/stories/cleanup", h.CleanupStories)
}

// Recount rebuilds every denormalized like and comment counter from the
// underlying rows.
func (h *AdminHandler) Recount(c echo.Context) error {
	if err := h.engagementService.RecountEngagement(c.Request().Context()); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Counters recounted"})
}

// CleanupStories deletes stories past their expiry along with their media
func (h *AdminHandler) CleanupStories(c echo.Context) error {
	removed, err := h.storyService.CleanupExpiredStories(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}
