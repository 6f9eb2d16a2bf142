package middleware

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hedeqiang/courier/retry"
	"github.com/hedeqiang/courier/transport"
)

// ErrCircuitOpen is returned when the breaker is rejecting requests.
var ErrCircuitOpen = errors.New("middleware: circuit open")

// Breaker short-circuits requests while the downstream endpoint is failing.
// Only transport-level faults trip it; well-formed application errors count
// as successful deliveries.
type Breaker struct {
	cb *retry.CircuitBreaker
}

// NewBreaker creates a circuit-breaker middleware around cb.
func NewBreaker(cb *retry.CircuitBreaker) *Breaker {
	return &Breaker{cb: cb}
}

// Wrap decorates the handler with the circuit breaker.
func (b *Breaker) Wrap(next Handler) Handler {
	return func(ctx context.Context, req *transport.Request) (json.RawMessage, error) {
		if !b.cb.Allow() {
			return nil, ErrCircuitOpen
		}
		result, err := next(ctx, req)
		var rpcErr *transport.Error
		if err != nil && !errors.As(err, &rpcErr) {
			b.cb.RecordFailure()
		} else {
			b.cb.RecordSuccess()
		}
		return result, err
	}
}
