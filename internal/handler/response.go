package handler

import (
	"github.com/labstack/echo/v4"

	"taskman/internal/errors"
)

// domainError converts a domain error into the echo error the middleware
// serializes, using the shared status and code mapping.
func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
