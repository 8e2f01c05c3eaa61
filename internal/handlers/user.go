package handlers

import (
	"net/http"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile reads, edits, discovery and moderation
type UserHandler struct {
	userService services.UserService
	feedService services.FeedService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserService, feedService services.FeedService) *UserHandler {
	return &UserHandler{userService: userService, feedService: feedService}
}

// RegisterUserRoutes registers user routes on the authenticated group
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.PUT("/users/me", h.UpdateProfile)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/recommended", h.RecommendedUsers)
	g.GET("/users/:username", h.GetProfile)
}

// RegisterAdminRoutes registers moderation routes; the group must carry the
// admin middleware.
func (h *UserHandler) RegisterAdminRoutes(g *echo.Group) {
	g.PUT("/admin/users/:id/activate", h.ActivateUser)
	g.PUT("/admin/users/:id/deactivate", h.DeactivateUser)
}

// GetMe returns the caller's own profile
func (h *UserHandler) GetMe(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfileByID(c.Request().Context(), claims.UserID, claims.UserID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetProfile returns another user's profile by username
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), c.Param("username"), claims.UserID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile edits the caller's profile. Sent as multipart form so the
// profile picture can ride along.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	req := models.UpdateProfileRequest{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		FullName: c.FormValue("full_name"),
		Bio:      c.FormValue("bio"),
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	picture, closer, err := formUpload(c, "profile_picture")
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), claims.UserID, req, picture)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers finds active users by username or full name
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}
	skip, limit := pagination(c)

	users, err := h.feedService.SearchUsers(c.Request().Context(), query, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// RecommendedUsers suggests accounts followed by people the caller follows
func (h *UserHandler) RecommendedUsers(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	users, err := h.feedService.RecommendedUsers(c.Request().Context(), claims.UserID, skip, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// ActivateUser re-enables a deactivated account
func (h *UserHandler) ActivateUser(c echo.Context) error {
	return h.setActive(c, true)
}

// DeactivateUser blocks an account from logging in
func (h *UserHandler) DeactivateUser(c echo.Context) error {
	return h.setActive(c, false)
}

func (h *UserHandler) setActive(c echo.Context, active bool) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.SetUserActive(c.Request().Context(), userID, active)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, user)
}
