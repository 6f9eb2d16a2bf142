package courier

import (
	"context"
	"encoding/json"
	"sync"
)

// Callback consumes the settled outcome of an asynchronous call: exactly one
// of err or result is meaningful.
type Callback func(err error, result json.RawMessage)

// Call is the future of one in-flight JSON-RPC request. The outcome can be
// awaited through Wait or Done/Result, and additionally delivered to one
// callback registered with OnDone. The callback fires exactly once, only
// after the call has settled, and never re-executes the request.
type Call struct {
	done chan struct{}

	mu        sync.Mutex
	result    json.RawMessage
	err       error
	cb        Callback
	settled   bool
	delivered bool
}

// newCall runs fn in a background goroutine and returns its future.
func newCall(fn func() (json.RawMessage, error)) *Call {
	c := &Call{done: make(chan struct{})}
	go func() {
		result, err := fn()
		c.settle(result, err)
	}()
	return c
}

// settle records the outcome, releases waiters and fires a registered
// callback.
func (c *Call) settle(result json.RawMessage, err error) {
	c.mu.Lock()
	c.result = result
	c.err = err
	c.settled = true
	cb := c.takeCallback()
	c.mu.Unlock()

	close(c.done)
	if cb != nil {
		cb(err, result)
	}
}

// takeCallback claims the registered callback for delivery. Caller holds
// c.mu.
func (c *Call) takeCallback() Callback {
	if c.cb == nil || c.delivered {
		return nil
	}
	c.delivered = true
	return c.cb
}

// Done returns a channel closed once the call has settled.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Result returns the settled outcome. It must only be called after Done is
// closed.
func (c *Call) Result() (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.err
}

// Wait blocks until the call settles or ctx is done, returning the outcome
// or the context error.
func (c *Call) Wait(ctx context.Context) (json.RawMessage, error) {
	select {
	case <-c.done:
		return c.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OnDone registers cb to receive the outcome. If the call has already
// settled, cb fires immediately on the calling goroutine; otherwise it fires
// on settlement. At most one callback is delivered per Call, exactly once.
func (c *Call) OnDone(cb Callback) {
	c.mu.Lock()
	if c.cb == nil {
		c.cb = cb
	}
	var fire Callback
	if c.settled {
		fire = c.takeCallback()
	}
	result, err := c.result, c.err
	c.mu.Unlock()

	if fire != nil {
		fire(err, result)
	}
}
