package handlers

import (
	"net/http"
	"strconv"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	contentService services.ContentService
	feedService    services.FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(contentService services.ContentService, feedService services.FeedService) *PostHandler {
	return &PostHandler{contentService: contentService, feedService: feedService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost creates a new post from a multipart form with optional image
// and video files.
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	req := models.CreatePostRequest{Caption: c.FormValue("caption")}
	req.IsPrivate, _ = strconv.ParseBool(c.FormValue("is_private"))
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, imageCloser, err := formUpload(c, "image")
	if err != nil {
		return err
	}
	if imageCloser != nil {
		defer imageCloser.Close()
	}
	video, videoCloser, err := formUpload(c, "video")
	if err != nil {
		return err
	}
	if videoCloser != nil {
		defer videoCloser.Close()
	}

	post, err := h.contentService.CreatePost(c.Request().Context(), claims.UserID, req.Caption, req.IsPrivate, image, video)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.contentService.GetPost(c.Request().Context(), postID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetUserPosts lists a user's posts; private posts only show to their owner
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	posts, err := h.feedService.ListUserPosts(c.Request().Context(), ownerID, claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.contentService.UpdatePost(c.Request().Context(), claims.UserID, claims.IsAdmin, postID, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post along with its engagement rows
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.contentService.DeletePost(c.Request().Context(), claims.UserID, claims.IsAdmin, postID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
