package subscribe

import (
	"context"
	"sync/atomic"

	"github.com/hedeqiang/courier/transport"
)

// State is a subscription handle's lifecycle state.
type State int32

const (
	// Subscribing means the request is sent and the ack is pending.
	Subscribing State = iota
	// Active means events are being delivered to the sink.
	Active
	// Unsubscribed is the terminal state after an explicit cancel.
	Unsubscribed
	// Errored is the terminal state after a transport-level failure.
	// Resubscribing requires a new Subscribe call.
	Errored
)

func (s State) String() string {
	switch s {
	case Subscribing:
		return "subscribing"
	case Active:
		return "active"
	case Unsubscribed:
		return "unsubscribed"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Handle is one live subscription: it pumps the transport's notifications
// into the sink until cancelled or failed.
type Handle struct {
	publicType string
	wireType   string

	sub    *transport.Subscription
	sink   Sink
	cancel context.CancelFunc
	pumped chan struct{}
	state  atomic.Int32
	errc   chan error
}

func newHandle(publicType, wireType string, sub *transport.Subscription, sink Sink) *Handle {
	h := &Handle{
		publicType: publicType,
		wireType:   wireType,
		sub:        sub,
		sink:       sink,
		errc:       make(chan error, 1),
	}
	h.state.Store(int32(Subscribing))
	return h
}

// start marks the handle active and launches the delivery pump.
func (h *Handle) start(ctx context.Context) {
	h.state.Store(int32(Active))
	ctx, h.cancel = context.WithCancel(ctx)
	h.pumped = make(chan struct{})
	go func() {
		defer close(h.pumped)
		h.pump(ctx)
	}()
}

// pump delivers notifications until the events channel closes. A closure
// with a pending transport error is the terminal Errored transition; a plain
// closure means the handle was cancelled.
func (h *Handle) pump(ctx context.Context) {
	defer h.sink.Close()
	for {
		select {
		case <-ctx.Done():
			// Context cancellation tears the subscription down the same
			// way an explicit Unsubscribe would.
			h.state.CompareAndSwap(int32(Active), int32(Unsubscribed))
			_ = h.sub.Unsubscribe()
			return
		case payload, ok := <-h.sub.Events():
			if !ok {
				select {
				case err := <-h.sub.Err():
					h.state.Store(int32(Errored))
					h.errc <- err
				default:
					h.state.CompareAndSwap(int32(Active), int32(Unsubscribed))
				}
				return
			}
			h.sink.Send(payload)
		}
	}
}

// Type returns the public subscription type the handle was opened with.
func (h *Handle) Type() string {
	return h.publicType
}

// WireType returns the wire-level subscription name behind the public type.
func (h *Handle) WireType() string {
	return h.wireType
}

// ID returns the server-assigned subscription identifier.
func (h *Handle) ID() string {
	return h.sub.ID()
}

// State returns the handle's current lifecycle state.
func (h *Handle) State() State {
	return State(h.state.Load())
}

// Err returns a channel receiving at most one transport-level failure, just
// before the handle turns Errored.
func (h *Handle) Err() <-chan error {
	return h.errc
}

// Unsubscribe cancels the subscription and waits for the delivery pump to
// drain. Safe to call more than once; a no-op after a transport failure.
func (h *Handle) Unsubscribe() error {
	h.state.CompareAndSwap(int32(Active), int32(Unsubscribed))
	err := h.sub.Unsubscribe()
	h.cancel()
	<-h.pumped
	return err
}
