package domain

import "errors"

var (
	ErrCityNotFound      = errors.New("city not found")
	ErrQueueEntryNotFound = errors.New("queue entry not found")
	ErrSystemUnavailable = errors.New("city storage unavailable")
)
