package courier

import (
	"time"

	"go.uber.org/zap"

	"github.com/hedeqiang/courier/middleware"
	"github.com/hedeqiang/courier/retry"
	"github.com/hedeqiang/courier/transport"
)

// Option configures a Client.
type Option func(*Client)

// WithWriteProvider sets the initial write provider. Nil disables the write
// path until SetWriteProvider is called.
func WithWriteProvider(t transport.Transport) Option {
	return func(c *Client) {
		c.config.WriteProvider = t
	}
}

// WithMiddleware appends middleware to the request chain. The chain is fixed
// once New returns.
func WithMiddleware(mw ...middleware.Middleware) Option {
	return func(c *Client) {
		c.config.Middlewares = append(c.config.Middlewares, mw...)
	}
}

// WithMaxRetries sets the number of retries after the first attempt of a
// transient failure.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.config.MaxRetries = n
	}
}

// WithRetryInterval sets the base delay before each retry.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		c.config.RetryInterval = d
	}
}

// WithRetryJitter sets the exclusive upper bound on the random addition to
// the retry interval.
func WithRetryJitter(d time.Duration) Option {
	return func(c *Client) {
		c.config.RetryJitter = d
	}
}

// WithRetryStrategy replaces the default fixed-interval policy with an
// arbitrary strategy, overriding the MaxRetries/RetryInterval/RetryJitter
// settings.
func WithRetryStrategy(s retry.Strategy) Option {
	return func(c *Client) {
		c.retry = s
	}
}

// WithLogger sets the client logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithSubscriptionTransport sets the push-capable transport used for
// subscriptions when the read provider cannot serve them (an HTTP read
// provider, say).
func WithSubscriptionTransport(t transport.Transport) Option {
	return func(c *Client) {
		c.subTransport = t
	}
}

// WithRESTEndpoint sets the base URL for the enhanced REST surface.
func WithRESTEndpoint(baseURL string) Option {
	return func(c *Client) {
		c.restBaseURL = baseURL
	}
}
