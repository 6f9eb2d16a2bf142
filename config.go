package courier

import (
	"os"
	"strings"
	"time"

	"github.com/hedeqiang/courier/middleware"
	"github.com/hedeqiang/courier/transport"
)

// WriteRPCURLEnv names the environment variable consulted for a default
// write provider endpoint.
const WriteRPCURLEnv = "COURIER_WRITE_RPC_URL"

// Config holds the construction-time configuration of a Client. Fields are
// fixed once New returns, except the write provider, which remains swappable
// through SetWriteProvider.
type Config struct {
	// WriteProvider handles signing methods. Nil disables the write path.
	WriteProvider transport.Transport

	// Middlewares is the ordered request chain, outermost first.
	Middlewares []middleware.Middleware

	// MaxRetries bounds retries after the first attempt of a transient
	// failure.
	MaxRetries int

	// RetryInterval is the base delay before each retry.
	RetryInterval time.Duration

	// RetryJitter is the exclusive upper bound on the random addition to
	// RetryInterval.
	RetryJitter time.Duration
}

// DefaultConfig returns a Config with the default retry policy and, when the
// COURIER_WRITE_RPC_URL environment variable is set, a write provider
// constructed from it.
func DefaultConfig() Config {
	return Config{
		WriteProvider: envWriteProvider(),
		MaxRetries:    3,
		RetryInterval: 1 * time.Second,
		RetryJitter:   250 * time.Millisecond,
	}
}

// envWriteProvider builds a transport from the write endpoint environment
// variable, or nil when unset.
func envWriteProvider() transport.Transport {
	url := os.Getenv(WriteRPCURLEnv)
	if url == "" {
		return nil
	}
	if strings.HasPrefix(url, "ws://") || strings.HasPrefix(url, "wss://") {
		return transport.NewWebSocket(url)
	}
	return transport.NewHTTP(url)
}
