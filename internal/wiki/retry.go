package wiki

import "time"

// RetryPolicy controls how many times a feed request is attempted and how
// long to wait between attempts. Backoff receives the 1-based number of the
// attempt that just failed.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// DefaultRetryPolicy is 3 attempts with linear backoff (1s, 2s).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * time.Second
		},
	}
}
