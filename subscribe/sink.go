package subscribe

import "encoding/json"

// Sink receives raw subscription notifications through a chosen delivery
// mechanism.
type Sink interface {
	// Send delivers a notification to this sink. Non-blocking.
	Send(payload json.RawMessage)

	// Close terminates the sink and releases resources.
	Close()
}

// Callback delivers notifications by invoking a listener function.
type Callback struct {
	fn   func(json.RawMessage)
	done chan struct{}
}

// NewCallback creates a callback-based sink.
func NewCallback(fn func(json.RawMessage)) *Callback {
	return &Callback{
		fn:   fn,
		done: make(chan struct{}),
	}
}

// Send invokes the listener with the payload. No-op once closed.
func (c *Callback) Send(payload json.RawMessage) {
	select {
	case <-c.done:
		return
	default:
	}
	c.fn(payload)
}

// Close stops the sink.
func (c *Callback) Close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

// Channel delivers notifications through a Go channel.
type Channel struct {
	ch   chan json.RawMessage
	done chan struct{}
}

// NewChannel creates a channel-based sink with the given buffer size.
func NewChannel(bufSize int) *Channel {
	if bufSize <= 0 {
		bufSize = 128
	}
	return &Channel{
		ch:   make(chan json.RawMessage, bufSize),
		done: make(chan struct{}),
	}
}

// Events returns the channel to read notifications from. It is closed when
// the subscription ends.
func (c *Channel) Events() <-chan json.RawMessage {
	return c.ch
}

// Send delivers a payload to the channel. Drops the payload if the consumer
// is not keeping up.
func (c *Channel) Send(payload json.RawMessage) {
	select {
	case <-c.done:
	case c.ch <- payload:
	default:
	}
}

// Close shuts down the sink and closes the events channel.
func (c *Channel) Close() {
	select {
	case <-c.done:
	default:
		close(c.done)
		close(c.ch)
	}
}
