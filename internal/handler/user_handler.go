package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskman/internal/auth"
	"taskman/internal/service"
)

// UserHandler handles profile endpoints for the acting user.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me godoc
// @Summary Get the current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user := h.userService.Get(c.Request().Context(), auth.CurrentUser(c))
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "Subset of name, age, email, password"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var updates map[string]interface{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.Update(c.Request().Context(), auth.CurrentUser(c), updates)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteMe godoc
// @Summary Delete the current user's account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	user := auth.CurrentUser(c)
	if err := h.userService.Delete(c.Request().Context(), user); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}
