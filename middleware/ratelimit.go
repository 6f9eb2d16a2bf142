package middleware

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/hedeqiang/courier/transport"
)

// RateLimit throttles outgoing requests with a token bucket, keeping the
// client under a provider's compute-unit budget.
type RateLimit struct {
	limiter *rate.Limiter
}

// NewRateLimit creates a rate-limiting middleware allowing rps requests per
// second with the given burst.
func NewRateLimit(rps float64, burst int) *RateLimit {
	return &RateLimit{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Wrap decorates the handler with rate limiting. The request blocks until a
// token is available or the context is done.
func (r *RateLimit) Wrap(next Handler) Handler {
	return func(ctx context.Context, req *transport.Request) (json.RawMessage, error) {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("middleware: rate limit: %w", err)
		}
		return next(ctx, req)
	}
}
