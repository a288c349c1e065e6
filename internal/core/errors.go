package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyContent is returned before any network call when a comment or
	// reply body is blank.
	ErrEmptyContent = errors.New("content must not be blank")

	// ErrNotAuthenticated short-circuits operations that need a bearer token.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrSelfReport rejects reporting your own content locally.
	ErrSelfReport = errors.New("you cannot report your own content")

	ErrForbidden = errors.New("not allowed")
	ErrNotFound  = errors.New("not found")

	// ErrDuplicate maps 409 responses, e.g. reporting the same content twice.
	// The server message is carried verbatim by the wrapping APIError.
	ErrDuplicate = errors.New("already exists")
)

// APIError is a rejection from the collaborator API.
type APIError struct {
	Status  int
	Message string

	err error
}

func NewAPIError(status int, message string, sentinel error) *APIError {
	return &APIError{Status: status, Message: message, err: sentinel}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.err != nil {
		return fmt.Sprintf("request failed: %s", e.err)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.err
}
