package handlers

import (
	"net/http"

	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles HTTP requests related to the follow graph
type FollowHandler struct {
	followService services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// Follow creates a follow edge toward the target user
func (h *FollowHandler) Follow(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.followService.Follow(c.Request().Context(), claims.UserID, targetID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Now following"})
}

// Unfollow removes the follow edge toward the target user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.followService.Unfollow(c.Request().Context(), claims.UserID, targetID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed"})
}

// GetFollowers lists the accounts following a user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	followers, err := h.followService.GetFollowers(c.Request().Context(), userID, claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, followers)
}

// GetFollowing lists the accounts a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	following, err := h.followService.GetFollowing(c.Request().Context(), userID, claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, following)
}
