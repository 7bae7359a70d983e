package auth

import (
	"github.com/labstack/echo/v4"

	"taskman/internal/model"
)

// Context keys set by the session middleware for downstream handlers.
const (
	UserContextKey  = "session_user"
	TokenContextKey = "session_token"
)

// CurrentUser returns the user resolved by the session middleware, or nil on
// unauthenticated routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(UserContextKey).(*model.User)
	return user
}

// CurrentToken returns the raw bearer token the session middleware accepted.
// Logout uses it to know which token to revoke.
func CurrentToken(c echo.Context) string {
	token, _ := c.Get(TokenContextKey).(string)
	return token
}
