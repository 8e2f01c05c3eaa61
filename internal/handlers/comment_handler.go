package handlers

import (
	"net/http"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	engagementService services.EngagementService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(engagementService services.EngagementService) *CommentHandler {
	return &CommentHandler{engagementService: engagementService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreatePostComment)
	g.GET("/posts/:id/comments", h.GetPostComments)
	g.POST("/reels/:id/comments", h.CreateReelComment)
	g.GET("/reels/:id/comments", h.GetReelComments)
	g.GET("/comments/:id/replies", h.GetReplies)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreatePostComment adds a comment or reply to a post
func (h *CommentHandler) CreatePostComment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.engagementService.CreatePostComment(c.Request().Context(), claims.UserID, postID, req.Content, req.ParentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// CreateReelComment adds a comment or reply to a reel
func (h *CommentHandler) CreateReelComment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	reelID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.engagementService.CreateReelComment(c.Request().Context(), claims.UserID, reelID, req.Content, req.ParentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetPostComments lists top-level comments on a post with one level of replies
func (h *CommentHandler) GetPostComments(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	comments, err := h.engagementService.ListPostComments(c.Request().Context(), postID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// GetReelComments lists top-level comments on a reel with one level of replies
func (h *CommentHandler) GetReelComments(c echo.Context) error {
	reelID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	comments, err := h.engagementService.ListReelComments(c.Request().Context(), reelID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// GetReplies pages through a comment's replies
func (h *CommentHandler) GetReplies(c echo.Context) error {
	commentID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	replies, total, err := h.engagementService.ListReplies(c.Request().Context(), commentID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"replies": replies,
		"total":   total,
	})
}

// UpdateComment edits a comment's content
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.engagementService.UpdateComment(c.Request().Context(), claims.UserID, claims.IsAdmin, commentID, req.Content)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment, its replies and their notifications
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.engagementService.DeleteComment(c.Request().Context(), claims.UserID, claims.IsAdmin, commentID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
