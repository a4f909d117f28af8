package client

import (
	"errors"
	"fmt"
)

// The client collapses remote failures into a small tagged set so callers
// can match with errors.Is/errors.As instead of inspecting status codes.
var (
	// ErrNotFound marks a 404 from the API. Slug lookups translate it to a
	// nil post instead; everything else surfaces it.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a 401/403. Handlers that surface errors react
	// to it by redirecting the browser to the login page.
	ErrUnauthorized = errors.New("unauthorized")
)

// ServerError is any other non-2xx response, with the status and body the
// API sent attached for the caller.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server responded with status %d: %s", e.Status, e.Body)
}

// NetworkError means the request went out but no response came back.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("no response from server: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
