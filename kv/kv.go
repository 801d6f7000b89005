package kv

import "time"

// Store is the shared counter store behind the rate limiter. Incr bumps the
// counter for key and returns its new value; a counter created by the call
// expires after window.
type Store interface {
	Incr(key string, window time.Duration) (int64, error)
}
