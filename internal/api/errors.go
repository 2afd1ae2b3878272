package api

import (
	"errors"
	"fmt"
)

// ErrNoToken is returned when login succeeds at the transport level but the
// backend hands back no token.
var ErrNoToken = errors.New("no token received")

// Error is a non-2xx answer from either remote service, reduced to the
// human-readable message the UI surfaces. Message comes from the optional
// "message" field of the JSON body, falling back to a per-endpoint generic.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// IsAuthFailure reports whether err is a 401 from the remote service.
func IsAuthFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 401
}
