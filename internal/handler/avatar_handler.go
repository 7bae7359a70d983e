package handler

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskman/internal/auth"
	"taskman/internal/service"
)

// AvatarHandler handles profile picture endpoints.
type AvatarHandler struct {
	avatarService service.AvatarService
}

// NewAvatarHandler creates a new avatar handler.
func NewAvatarHandler(avatarService service.AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarService: avatarService}
}

// Upload godoc
// @Summary Upload the current user's avatar
// @Tags avatars
// @Accept mpfd
// @Security BearerAuth
// @Param avatar formData file true "Avatar image (jpg, jpeg, png; max 1MB)"
// @Success 200
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/me/avatar [post]
func (h *AvatarHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": "avatar file is required"})
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": "unable to read upload"})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": "unable to read upload"})
	}

	if err := h.avatarService.Upload(c.Request().Context(), auth.CurrentUser(c), file.Filename, data); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusOK)
}

// Remove godoc
// @Summary Remove the current user's avatar
// @Tags avatars
// @Security BearerAuth
// @Success 200
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/me/avatar [delete]
func (h *AvatarHandler) Remove(c echo.Context) error {
	if err := h.avatarService.Remove(c.Request().Context(), auth.CurrentUser(c)); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusOK)
}

// Fetch godoc
// @Summary Fetch a user's avatar by id
// @Tags avatars
// @Produce png
// @Param id path string true "User ID"
// @Success 200 {file} binary
// @Failure 404 "avatar or user absent"
// @Router /users/{id}/avatar [get]
func (h *AvatarHandler) Fetch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	data, err := h.avatarService.Fetch(c.Request().Context(), id)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	return c.Blob(http.StatusOK, "image/png", data)
}
