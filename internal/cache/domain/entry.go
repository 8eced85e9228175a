package domain

import (
	"errors"
	"time"
)

var ErrEntryNotFound = errors.New("cache entry not found")

// Entry is a cached response body for one call and parameter set.
type Entry struct {
	Key       string
	Call      string
	Body      []byte
	ExpiresAt time.Time
}

func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
