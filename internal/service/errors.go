package service

import "errors"

// Error taxonomy shared by backends and stores. Transport failures wrap
// ErrTimeout or come through as plain errors; semantic rejections carry an
// *APIError so callers can show the server's message.
var (
	// ErrUnauthorized indicates the session cookie is missing, expired,
	// or the credentials were rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTimeout indicates the request did not complete in time.
	ErrTimeout = errors.New("request timed out")

	// ErrBadResponse indicates the server returned a body that does not
	// match the expected shape (wrong content type, missing fields).
	ErrBadResponse = errors.New("unexpected server response")
)

// APIError is a semantic rejection from the server (non-2xx with a JSON
// error body). Message is the server-provided, human-readable text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Unwrap maps well-known status codes onto the sentinel errors above so
// callers can branch with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401, 403:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	}
	return nil
}

// Message extracts a displayable message from err. An *APIError yields the
// server's text; anything else yields fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
