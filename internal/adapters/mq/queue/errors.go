package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrStopped = errors.New("observation queue stopped")
)
