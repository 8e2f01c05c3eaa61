package handlers

import (
	"net/http"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ReelHandler handles HTTP requests related to reels
type ReelHandler struct {
	contentService services.ContentService
	feedService    services.FeedService
}

// NewReelHandler creates a new ReelHandler
func NewReelHandler(contentService services.ContentService, feedService services.FeedService) *ReelHandler {
	return &ReelHandler{contentService: contentService, feedService: feedService}
}

// RegisterReelRoutes registers reel-related routes
func (h *ReelHandler) RegisterReelRoutes(g *echo.Group) {
	g.POST("/reels", h.CreateReel)
	g.GET("/reels", h.GetReels)
	g.GET("/reels/following", h.GetFollowingReels)
	g.GET("/reels/:id", h.GetReel)
	g.PUT("/reels/:id", h.UpdateReel)
	g.DELETE("/reels/:id", h.DeleteReel)
	g.GET("/users/:id/reels", h.GetUserReels)
}

// CreateReel creates a new reel; the video file is required
func (h *ReelHandler) CreateReel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	video, videoCloser, err := formUpload(c, "video")
	if err != nil {
		return err
	}
	if video == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing video file")
	}
	defer videoCloser.Close()

	reel, err := h.contentService.CreateReel(c.Request().Context(), claims.UserID, c.FormValue("caption"), video)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, reel)
}

// GetReels lists reels, newest first
func (h *ReelHandler) GetReels(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	reels, err := h.feedService.ListReels(c.Request().Context(), claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, reels)
}

// GetFollowingReels lists reels from accounts the caller follows
func (h *ReelHandler) GetFollowingReels(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	reels, err := h.feedService.ListFollowingReels(c.Request().Context(), claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, reels)
}

// GetReel retrieves a reel by ID
func (h *ReelHandler) GetReel(c echo.Context) error {
	reelID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	reel, err := h.contentService.GetReel(c.Request().Context(), reelID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, reel)
}

// GetUserReels lists a user's reels
func (h *ReelHandler) GetUserReels(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	reels, err := h.feedService.ListUserReels(c.Request().Context(), ownerID, claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, reels)
}

// UpdateReel updates a reel caption
func (h *ReelHandler) UpdateReel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	reelID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateReelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reel, err := h.contentService.UpdateReel(c.Request().Context(), claims.UserID, claims.IsAdmin, reelID, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, reel)
}

// DeleteReel deletes a reel along with its engagement rows
func (h *ReelHandler) DeleteReel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	reelID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.contentService.DeleteReel(c.Request().Context(), claims.UserID, claims.IsAdmin, reelID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
