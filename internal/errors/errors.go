package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user record is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering or changing to an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnableToLogin is returned for any login failure. The message is
	// deliberately identical for unknown email and wrong password.
	ErrUnableToLogin = errors.New("unable to log in")
	// ErrInvalidToken is returned when a bearer token is missing, malformed,
	// or no longer a member of its account's live token collection.
	ErrInvalidToken = errors.New("please authenticate")
	// ErrInvalidUpdates is returned when a patch contains a field outside the allow-list.
	ErrInvalidUpdates = errors.New("invalid updates")
	// ErrAvatarNotFound is returned when fetching an avatar for a user that has none.
	ErrAvatarNotFound = errors.New("avatar not found")
	// ErrImageDecode is returned when an uploaded avatar cannot be decoded as an image.
	ErrImageDecode = errors.New("unable to process image")
	// ErrTaskNotFound is returned when a task is missing or owned by someone else.
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError reports malformed or forbidden input. The message is safe
// to surface to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors become
// a generic 500 so store internals never leak to clients.
func MapErrorToHTTP(err error) *HTTPError {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return NewHTTPError(http.StatusBadRequest, validation.Message, "VALIDATION_ERROR")
	}

	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUnableToLogin):
		return NewHTTPError(http.StatusBadRequest, ErrUnableToLogin.Error(), "AUTHENTICATION_FAILED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidUpdates):
		// The original API reports unknown patch fields as 404.
		return NewHTTPError(http.StatusNotFound, ErrInvalidUpdates.Error(), "INVALID_UPDATES")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAvatarNotFound):
		return NewHTTPError(http.StatusNotFound, ErrAvatarNotFound.Error(), "AVATAR_NOT_FOUND")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, ErrTaskNotFound.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrImageDecode):
		return NewHTTPError(http.StatusBadRequest, ErrImageDecode.Error(), "IMAGE_DECODE_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
