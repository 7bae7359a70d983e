package router

import (
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"taskman/internal/auth"
	"taskman/internal/errors"
	"taskman/internal/repository"
)

// requireSession returns the middleware pair protecting authenticated routes.
// echo-jwt rejects tokens with a bad signature; the membership middleware then
// requires the exact token string to still be in its holder's live collection,
// so a revoked token is rejected on the very next request even though its
// signature remains valid. The resolved user and raw token are attached to the
// request context for downstream handlers.
func requireSession(secret string, tokens repository.TokenRepository) []echo.MiddlewareFunc {
	signature := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c echo.Context, err error) error {
			return authError()
		},
	})
	return []echo.MiddlewareFunc{signature, membership(tokens)}
}

func membership(tokens repository.TokenRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return authError()
			}

			user, err := tokens.FindUser(c.Request().Context(), raw)
			if err != nil {
				return authError()
			}

			c.Set(auth.UserContextKey, user)
			c.Set(auth.TokenContextKey, raw)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

func authError() *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(errors.ErrInvalidToken)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
