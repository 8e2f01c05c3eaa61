package handlers

import (
	"net/http"

	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles HTTP requests for feed and discovery surfaces
type FeedHandler struct {
	feedService services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/trending", h.GetTrending)
	g.GET("/posts/search", h.SearchPosts)
}

// GetFeed returns visible posts, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	posts, err := h.feedService.ListFeed(c.Request().Context(), claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetTrending returns public posts ordered by like count
func (h *FeedHandler) GetTrending(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	posts, err := h.feedService.ListTrendingPosts(c.Request().Context(), claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// SearchPosts finds posts by caption, honoring visibility rules
func (h *FeedHandler) SearchPosts(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}
	skip, limit := pagination(c)

	posts, err := h.feedService.SearchPosts(c.Request().Context(), query, claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, posts)
}
