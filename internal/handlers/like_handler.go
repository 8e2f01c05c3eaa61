package handlers

import (
	"net/http"

	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagementService services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagementService services.EngagementService) *LikeHandler {
	return &LikeHandler{engagementService: engagementService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
	g.POST("/reels/:id/like", h.LikeReel)
	g.DELETE("/reels/:id/like", h.UnlikeReel)
}

// LikePost records a like on a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.engagementService.LikePost(c.Request().Context(), claims.UserID, postID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Post liked"})
}

// UnlikePost removes the caller's like from a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.engagementService.UnlikePost(c.Request().Context(), claims.UserID, postID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post unliked"})
}

// LikeReel records a like on a reel
func (h *LikeHandler) LikeReel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	reelID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.engagementService.LikeReel(c.Request().Context(), claims.UserID, reelID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Reel liked"})
}

// UnlikeReel removes the caller's like from a reel
func (h *LikeHandler) UnlikeReel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	reelID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.engagementService.UnlikeReel(c.Request().Context(), claims.UserID, reelID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reel unliked"})
}
