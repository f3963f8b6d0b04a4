package gateway

import "errors"

var (
	// ErrUnavailable covers network failures and non-success HTTP statuses.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the shared secret was missing or rejected. The
	// remote signals this with a body-level error field, not an HTTP status.
	ErrUnauthorized = errors.New("access denied by server")

	// ErrRejected means the remote answered but did not confirm success
	// (success=false or a malformed body).
	ErrRejected = errors.New("server rejected the request")

	// ErrNotConfigured means no endpoint/token has been saved yet.
	ErrNotConfigured = errors.New("remote endpoint is not configured")
)
