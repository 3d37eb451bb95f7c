package datasource

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound requests to one upstream host.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// NewLimiter allows requestsPerSecond sustained requests with an equal burst.
// A non-positive rate disables limiting.
func NewLimiter(name string, requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 0), name: name}
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		name:    name,
	}
}

// Wait blocks until the limiter allows the request or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter %s: %w", l.name, err)
	}
	return nil
}
