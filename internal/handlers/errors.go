package handlers

import (
	"errors"
	"net/http"

	"tribute-api/internal/repositories"
	"tribute-api/pkg/lambda"
)

// Client-facing error messages
const (
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgConfigError      = "Server configuration error."
	MsgFetchFailed      = "Failed to fetch tributes"
	MsgNotFound         = "Tribute not found"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a write that returns no record
type MessageResponse struct {
	Message string `json:"message"`
}

func errorResponse(statusCode int, message string) (*lambda.Response, error) {
	return lambda.JSON(statusCode, ErrorResponse{Error: message})
}

func methodNotAllowed() (*lambda.Response, error) {
	return errorResponse(http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

// errorMessage extracts the most specific message of a persistence error.
// Repository context is stripped so clients see the driver text.
func errorMessage(err error, fallback string) string {
	var repoErr *repositories.RepositoryError
	if errors.As(err, &repoErr) {
		if repoErr.Message != "" {
			return repoErr.Message
		}
		if repoErr.Err != nil && repoErr.Err.Error() != "" {
			return repoErr.Err.Error()
		}
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// isClientError reports whether a persistence error was caused by the request data
func isClientError(err error) bool {
	return repositories.IsConstraint(err) || repositories.IsValidation(err)
}

// allowMethod reports whether method is one of allowed
func allowMethod(method string, allowed ...string) bool {
	for _, m := range allowed {
		if method == m {
			return true
		}
	}
	return false
}
