package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskman/internal/config"
	"taskman/internal/handler"
	"taskman/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens repository.TokenRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	avatarHandler *handler.AvatarHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	session := requireSession(cfg.JWTSecret, tokens)

	// Public routes
	e.POST("/users", authHandler.Register)
	e.POST("/user/login", authHandler.Login)
	e.GET("/users/:id/avatar", avatarHandler.Fetch)

	// Session routes
	e.POST("/users/logout", authHandler.Logout, session...)
	e.POST("/users/logoutAll", authHandler.LogoutAll, session...)
	e.GET("/users/me", userHandler.Me, session...)
	e.PATCH("/user/me", userHandler.UpdateMe, session...)
	e.DELETE("/user/me", userHandler.DeleteMe, session...)
	e.POST("/users/me/avatar", avatarHandler.Upload, session...)
	e.DELETE("/users/me/avatar", avatarHandler.Remove, session...)

	// Task routes
	e.POST("/tasks", taskHandler.Create, session...)
	e.GET("/tasks", taskHandler.List, session...)
	e.GET("/tasks/:id", taskHandler.Get, session...)
	e.PATCH("/tasks/:id", taskHandler.Update, session...)
	e.DELETE("/tasks/:id", taskHandler.Delete, session...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
