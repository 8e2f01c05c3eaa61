package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const defaultPageSize = 20

// currentClaims returns the JWT claims set by the auth middleware
func currentClaims(c echo.Context) (*models.JwtCustomClaims, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}
	return claims, nil
}

// pagination reads skip/limit query params with sane defaults
func pagination(c echo.Context) (int, int) {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	return skip, limit
}

// pathID parses a numeric path parameter
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// serviceError maps a service error to the matching HTTP status
func serviceError(err error) error {
	return echo.NewHTTPError(services.HTTPStatus(err), err.Error())
}

// formUpload opens an optional multipart file field. The returned closer is
// non-nil only when a file was present.
func formUpload(c echo.Context, field string) (*services.MediaUpload, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// Absent field, not an error for optional uploads
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
	}
	return &services.MediaUpload{Reader: f, Filename: fh.Filename}, f, nil
}
