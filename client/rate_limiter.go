package client

import (
	"golang.org/x/time/rate"
)

// WithRateLimit caps outgoing requests at requestsPerSecond with the given burst.
// A non-positive rate removes the cap.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = newLimiter(requestsPerSecond, burst)
	}
}

func newLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
