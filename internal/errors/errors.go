package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidCredentials is returned on login failure. One message for both
	// unknown email and wrong password, to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when the email already belongs to another user.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPasswordTooShort is returned when the password is under 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrWrongPassword is returned when the current password check fails on edit.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrMissingFields is returned when a required field is absent.
	ErrMissingFields = errors.New("all fields are required")
	// ErrInvalidCategory is returned when the category is not one of the fixed set.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrDescriptionTooShort is returned when the description is under 12 characters.
	ErrDescriptionTooShort = errors.New("description must be at least 12 characters")
	// ErrFileRequired is returned when a required upload is missing.
	ErrFileRequired = errors.New("file is required")
	// ErrFileTooLarge is returned when an upload exceeds its size cap.
	ErrFileTooLarge = errors.New("file too large")
	// ErrNotCreator is returned when someone other than the creator mutates a post.
	ErrNotCreator = errors.New("only the creator may modify this post")
)

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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so internal detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotCreator):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_CREATOR")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrPasswordTooShort):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "PASSWORD_TOO_SHORT")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "WRONG_PASSWORD")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "MISSING_FIELDS")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrDescriptionTooShort):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "DESCRIPTION_TOO_SHORT")
	case errors.Is(err, ErrFileRequired):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "FILE_REQUIRED")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "FILE_TOO_LARGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
