package utils

import (
	"fmt"
	"net/http"
)

// CustomError carries an HTTP status code alongside the message so the
// global error middleware can map failures without type switching everywhere.
type CustomError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *CustomError) Error() string {
	return e.Message
}

// NewCustomError builds a CustomError with a specific status code.
func NewCustomError(statusCode int, message string) *CustomError {
	return &CustomError{StatusCode: statusCode, Message: message}
}

// NewValidationError marks malformed caller input. Extraction is never
// attempted when one of these is raised.
func NewValidationError(message string) *CustomError {
	return &CustomError{StatusCode: http.StatusBadRequest, Message: message}
}

// NewExtractionError wraps a vision collaborator failure. Fatal to the
// extraction call.
func NewExtractionError(cause error) *CustomError {
	return &CustomError{
		StatusCode: http.StatusBadGateway,
		Message:    fmt.Sprintf("Failed to extract menu: %v", cause),
	}
}

// DocumentTooLargeError means the menu could not fit the storage budget even
// at maximum truncation. Sizes are reported in MiB for diagnosability.
type DocumentTooLargeError struct {
	SizeBytes  int
	LimitBytes int
	Iterations int
}

func (e *DocumentTooLargeError) Error() string {
	sizeMiB := float64(e.SizeBytes) / (1024 * 1024)
	limitMiB := float64(e.LimitBytes) / (1024 * 1024)
	return fmt.Sprintf(
		"Menu data is too large (estimated %.2f MiB > %.2f MiB safe limit) even after %d reduction iterations. Please reduce the number of items or descriptions.",
		sizeMiB, limitMiB, e.Iterations,
	)
}

// StatusCodeFor maps an error to the HTTP status the middleware should emit.
func StatusCodeFor(err error) int {
	switch e := err.(type) {
	case *CustomError:
		return e.StatusCode
	case *DocumentTooLargeError:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
