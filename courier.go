// Package courier provides a resilient client for Alchemy-enhanced Ethereum
// endpoints: JSON-RPC with routing between read and write providers and
// bounded jittered retries, the enhanced REST surface, and the extended
// subscription type set.
//
// Usage:
//
//	c := courier.Dial(courier.EthMainnet, "KEY",
//	    courier.WithMaxRetries(5),
//	    courier.WithMiddleware(middleware.NewLogger(logger)),
//	)
//	defer c.Close()
//
//	head, err := c.Call(ctx, "eth_blockNumber")
package courier

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hedeqiang/courier/rest"
	"github.com/hedeqiang/courier/retry"
	"github.com/hedeqiang/courier/subscribe"
	"github.com/hedeqiang/courier/transport"
)

// Client is one logical connection to an enhanced Ethereum endpoint.
type Client struct {
	config Config
	logger *zap.Logger
	retry  retry.Strategy

	router       *Router
	subTransport transport.Transport
	restBaseURL  string
	rest         *rest.Client
	subs         *subscribe.Adapter
	closed       atomic.Bool
}

// New creates a Client over the given read provider. The read provider is
// fixed for the client's lifetime; the write provider starts from Config and
// remains swappable through SetWriteProvider.
func New(read transport.Transport, opts ...Option) *Client {
	c := &Client{
		config: DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.retry == nil {
		c.retry = &retry.Constant{
			MaxRetries: c.config.MaxRetries,
			Interval:   c.config.RetryInterval,
			Jitter:     c.config.RetryJitter,
		}
	}

	c.router = NewRouter(read, c.config.WriteProvider)

	subT := c.subTransport
	if subT == nil {
		subT = read
	}
	c.subs = subscribe.NewAdapter(subT, c.logger)

	if c.restBaseURL != "" {
		c.rest = rest.New(c.restBaseURL, rest.WithLogger(c.logger))
	}

	return c
}

// Dial creates a Client for a named network: HTTP JSON-RPC for calls, a
// WebSocket transport for subscriptions, and the network's REST surface.
func Dial(network Network, apiKey string, opts ...Option) *Client {
	base := []Option{
		WithSubscriptionTransport(transport.NewWebSocket(network.WSURL(apiKey))),
		WithRESTEndpoint(network.RESTURL(apiKey)),
	}
	return New(transport.NewHTTP(network.HTTPURL(apiKey)), append(base, opts...)...)
}

// SetWriteProvider atomically replaces the write provider. Nil disables the
// write path. In-flight calls keep the provider they resolved at dispatch
// time.
func (c *Client) SetWriteProvider(t transport.Transport) {
	c.router.SetWriteProvider(t)
}

// REST returns the enhanced REST client, or nil when no REST endpoint is
// configured.
func (c *Client) REST() *rest.Client {
	return c.rest
}

// Subscriptions returns the subscription adapter over the client's
// push-capable transport.
func (c *Client) Subscriptions() *subscribe.Adapter {
	return c.subs
}

// Subscribe opens a push subscription of the given public type, delivering
// raw notifications to sink. See the subscribe package for types and filter
// options. Fails with ErrNoSubscriptionTransport when the client has no
// push-capable transport.
func (c *Client) Subscribe(ctx context.Context, typ string, sink subscribe.Sink, opts ...subscribe.Option) (*subscribe.Handle, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	h, err := c.subs.Subscribe(ctx, typ, sink, opts...)
	if errors.Is(err, transport.ErrSubscriptionsUnsupported) {
		return nil, ErrNoSubscriptionTransport
	}
	return h, err
}

// Close terminates the client's transports. Open subscriptions observe a
// transport failure and move to their terminal error state; later calls on
// the client fail with ErrClosed.
func (c *Client) Close() error {
	c.closed.Store(true)

	var firstErr error
	if err := c.router.Read().Close(); err != nil {
		firstErr = err
	}
	if c.subTransport != nil {
		if err := c.subTransport.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if w, _ := c.currentWrite(); w != nil {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// currentWrite snapshots the write provider without the configuration-error
// handling of Route.
func (c *Client) currentWrite() (transport.Transport, bool) {
	c.router.mu.RLock()
	defer c.router.mu.RUnlock()
	return c.router.write, c.router.write != nil
}
