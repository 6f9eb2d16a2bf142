package courier

import (
	"sync"

	"github.com/hedeqiang/courier/transport"
)

// writeMethods is the fixed set of signing methods routed to the write
// provider.
var writeMethods = map[string]bool{
	"eth_accounts":         true,
	"eth_sendTransaction":  true,
	"eth_signTransaction":  true,
	"eth_sign":             true,
	"personal_sign":        true,
	"eth_signTypedData":    true,
	"eth_signTypedData_v3": true,
	"eth_signTypedData_v4": true,
}

// IsWriteMethod reports whether method is routed to the write provider.
func IsWriteMethod(method string) bool {
	return writeMethods[method]
}

// Router chooses the transport for each method: signing methods go to the
// swappable write provider, everything else to the fixed read provider.
type Router struct {
	read transport.Transport

	mu    sync.RWMutex
	write transport.Transport
}

// NewRouter creates a Router over the given read provider and optional write
// provider.
func NewRouter(read, write transport.Transport) *Router {
	return &Router{read: read, write: write}
}

// Route returns the transport for method. A signing method with no write
// provider configured fails with ErrNoWriteProvider before any network
// attempt.
func (r *Router) Route(method string) (transport.Transport, error) {
	if !IsWriteMethod(method) {
		return r.read, nil
	}
	r.mu.RLock()
	write := r.write
	r.mu.RUnlock()
	if write == nil {
		return nil, ErrNoWriteProvider
	}
	return write, nil
}

// SetWriteProvider atomically replaces the write provider. Nil disables the
// write path. Calls already dispatched keep the transport they resolved.
func (r *Router) SetWriteProvider(t transport.Transport) {
	r.mu.Lock()
	r.write = t
	r.mu.Unlock()
}

// Read returns the fixed read provider.
func (r *Router) Read() transport.Transport {
	return r.read
}
