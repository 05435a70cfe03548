package hls

import "time"

// DefaultMinLoadableRetryCount is the default number of times to retry
// loading data prior to failing.
const DefaultMinLoadableRetryCount = 3

// retryDelay converts a consecutive-failure count into a capped,
// increasing backoff: 0ms, 1000ms, 2000ms, ... up to a 5s ceiling.
func retryDelay(errorCount int) time.Duration {
	d := time.Duration(errorCount-1) * time.Second
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	if d < 0 {
		d = 0
	}
	return d
}
