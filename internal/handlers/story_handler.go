package handlers

import (
	"net/http"

	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles HTTP requests related to stories
type StoryHandler struct {
	storyService services.StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories/following", h.GetFollowingStories)
	g.GET("/users/:id/stories", h.GetUserStories)
	g.DELETE("/stories/:id", h.DeleteStory)
}

// CreateStory creates a story from an uploaded media file
func (h *StoryHandler) CreateStory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	media, closer, err := formUpload(c, "media")
	if err != nil {
		return err
	}
	if media == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing media file")
	}
	defer closer.Close()

	story, err := h.storyService.CreateStory(c.Request().Context(), claims.UserID, media)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, story)
}

// GetUserStories lists a user's unexpired stories
func (h *StoryHandler) GetUserStories(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	stories, err := h.storyService.GetUserStories(c.Request().Context(), ownerID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, stories)
}

// GetFollowingStories lists unexpired stories from followed accounts
func (h *StoryHandler) GetFollowingStories(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	stories, err := h.storyService.GetFollowingStories(c.Request().Context(), claims.UserID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, stories)
}

// DeleteStory deletes a story before its expiry
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	storyID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.storyService.DeleteStory(c.Request().Context(), claims.UserID, claims.IsAdmin, storyID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
