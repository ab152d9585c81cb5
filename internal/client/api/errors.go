package api

import "errors"

var (
	// ErrUnavailable means no response arrived at all (connection refused,
	// timeout, DNS failure). Surfaced to the user as a generic network error.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks 401/403 responses so callers can fall back to
	// the anonymous path instead of showing an error notice.
	ErrUnauthorized = errors.New("unauthorized")

	// Client-side upload validation errors. When one of these is returned,
	// no request was issued.
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// Error is an application-level failure: the server responded, but the
// response is not ok or the payload signals failure. Message is the
// server-provided text when present, else the per-action fallback.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

// Unwrap lets errors.Is(err, ErrUnauthorized) match auth failures.
func (e *Error) Unwrap() error {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return ErrUnauthorized
	}
	return nil
}
