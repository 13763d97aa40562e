package radarr

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the API key was rejected. Callers treat this as
// fatal: the credentials will not start working mid-run.
var ErrUnauthorized = errors.New("api key rejected")

// StatusError is a non-auth API failure, carrying the HTTP status and a
// body excerpt for the log.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("radarr: HTTP %d", e.Code)
	}
	return fmt.Sprintf("radarr: HTTP %d: %s", e.Code, e.Body)
}
