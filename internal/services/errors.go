package services

import "errors"

var (
	// ErrSyncInFlight is returned when a push is requested while another
	// push is still running. The request is dropped, not queued.
	ErrSyncInFlight = errors.New("sync already in progress")
)
