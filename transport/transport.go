// Package transport provides JSON-RPC transport layer abstractions.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// Transport sends JSON-RPC requests and returns raw responses.
type Transport interface {
	// Call sends a JSON-RPC request and returns the result bytes.
	Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)

	// Subscribe establishes a push subscription for the given subscription
	// type (WebSocket only).
	Subscribe(ctx context.Context, subType string, params ...interface{}) (*Subscription, error)

	// Close terminates the transport connection.
	Close() error
}

// Request is a JSON-RPC request prior to transmission. Middleware may rewrite
// its fields in place.
type Request struct {
	Method string
	Params []interface{}
}

// ErrSubscriptionsUnsupported is returned by Subscribe on transports without
// a push channel.
var ErrSubscriptionsUnsupported = errors.New("transport: subscriptions not supported")

// ErrClosed is returned when a call is attempted on a closed connection.
var ErrClosed = errors.New("transport: connection closed")

// Error is a JSON-RPC 2.0 error object returned by the server.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error: code=%d message=%s", e.Code, e.Message)
}

// HTTPError is a non-2xx HTTP response from the endpoint.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("transport: HTTP %d: %s", e.Status, e.Body)
}

// Rate-limit signals inside an otherwise well-formed JSON-RPC error object.
const (
	codeRateLimited   = 429    // providers that mirror the HTTP status into the error
	codeLimitExceeded = -32005 // EIP-1474 "limit exceeded"
)

// IsTransient reports whether err is retry-eligible: a connection or
// timeout fault on the wire, or a rate-limit signal. Well-formed
// application errors, non-429 HTTP client errors, context cancellation and
// local encode/decode failures are permanent — retrying cannot change them.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Code == codeRateLimited || rpcErr.Code == codeLimitExceeded
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status == http.StatusTooManyRequests || httpErr.Status >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return false
}

// recognizedSubscriptions is the standard pub/sub type set. Subscribing to a
// type outside it emits a diagnostic warning (see WithWarnSink).
var recognizedSubscriptions = map[string]bool{
	"newHeads":               true,
	"logs":                   true,
	"newPendingTransactions": true,
	"syncing":                true,
}

// Recognized reports whether subType belongs to the transport's built-in
// subscription type set.
func Recognized(subType string) bool {
	return recognizedSubscriptions[subType]
}

type warnSinkKey struct{}

// WithWarnSink returns a context that routes transport diagnostics for calls
// made with it to the given logger instead of the transport's own. The
// override lives exactly as long as the context.
func WithWarnSink(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, warnSinkKey{}, logger)
}

// DiagnosticLogger resolves the diagnostic logger for one call: the sink
// installed by WithWarnSink if present, otherwise fallback.
func DiagnosticLogger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(warnSinkKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	if fallback == nil {
		return zap.NewNop()
	}
	return fallback
}

// Subscription is a live push subscription on a transport. Delivery and
// teardown are mutually exclusive: a Deliver racing Fail or Unsubscribe is
// dropped, never sent on the closed channel.
type Subscription struct {
	id     string
	cancel func() error

	mu     sync.Mutex
	ch     chan json.RawMessage
	errc   chan error
	closed bool
}

// NewSubscription builds a Subscription with the given server-assigned id,
// event buffer size and cancel hook. Exposed for transport implementations
// and test fakes.
func NewSubscription(id string, buf int, cancel func() error) *Subscription {
	if buf <= 0 {
		buf = 64
	}
	return &Subscription{
		id:     id,
		ch:     make(chan json.RawMessage, buf),
		errc:   make(chan error, 1),
		cancel: cancel,
	}
}

// Deliver hands a raw notification to the subscription's event channel.
// Drops the notification if the consumer is not keeping up or the
// subscription has ended.
func (s *Subscription) Deliver(payload json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- payload:
	default:
	}
}

// Fail records a transport-level failure on the subscription and closes its
// event channel. The subscription is unusable afterwards. A no-op once the
// subscription has already ended.
func (s *Subscription) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	select {
	case s.errc <- err:
	default:
	}
	close(s.ch)
}

// ID returns the server-assigned subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Events returns the channel of raw subscription notifications. It is closed
// on Unsubscribe and when the transport loses the subscription.
func (s *Subscription) Events() <-chan json.RawMessage {
	return s.ch
}

// Err returns a channel that receives at most one transport-level failure,
// delivered just before the events channel closes.
func (s *Subscription) Err() <-chan error {
	return s.errc
}

// Unsubscribe cancels the subscription and closes the events channel. Safe to
// call more than once; a no-op after a transport failure.
func (s *Subscription) Unsubscribe() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	// The cancel hook may issue a network call; keep it outside the lock.
	if s.cancel != nil {
		return s.cancel()
	}
	return nil
}
