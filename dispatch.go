package courier

import (
	"context"
	"encoding/json"

	"github.com/hedeqiang/courier/middleware"
	"github.com/hedeqiang/courier/retry"
	"github.com/hedeqiang/courier/transport"
)

// Call routes the method, runs the middleware chain once, and transmits the
// request to the resolved transport, retrying transient failures per the
// configured policy. Permanent failures (application errors, non-429 client
// errors) propagate immediately.
func (c *Client) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	t, err := c.router.Route(method)
	if err != nil {
		return nil, err
	}

	req := &transport.Request{Method: method, Params: params}
	handler := middleware.Chain(c.transmitter(t), c.config.Middlewares...)
	return handler(ctx, req)
}

// CallAsync is Call as a future: it returns immediately and delivers the
// outcome through the Call's await and callback surfaces.
func (c *Client) CallAsync(ctx context.Context, method string, params ...interface{}) *Call {
	return newCall(func() (json.RawMessage, error) {
		return c.Call(ctx, method, params...)
	})
}

// transmitter returns the terminal handler for one dispatched request: a
// bounded-retry send to the transport captured at dispatch time. The
// middleware chain wraps this handler, so middleware side effects are not
// repeated by retries.
func (c *Client) transmitter(t transport.Transport) middleware.Handler {
	return func(ctx context.Context, req *transport.Request) (json.RawMessage, error) {
		var result json.RawMessage
		err := retry.Do(ctx, c.retry, func(ctx context.Context) error {
			res, err := t.Call(ctx, req.Method, req.Params...)
			if err != nil {
				if !transport.IsTransient(err) {
					return retry.Permanent(err)
				}
				return err
			}
			result = res
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}
