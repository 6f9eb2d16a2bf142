package courier

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hedeqiang/courier/transport"
)

// stubTransport records calls and replays a scripted sequence of outcomes.
// When the script runs out, the last outcome repeats.
type stubTransport struct {
	mu      sync.Mutex
	methods []string
	script  []stubOutcome
}

type stubOutcome struct {
	result json.RawMessage
	err    error
}

func (s *stubTransport) Call(_ context.Context, method string, _ ...interface{}) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods = append(s.methods, method)
	if len(s.script) == 0 {
		return json.RawMessage(`"ok"`), nil
	}
	out := s.script[0]
	if len(s.script) > 1 {
		s.script = s.script[1:]
	}
	return out.result, out.err
}

func (s *stubTransport) Subscribe(_ context.Context, _ string, _ ...interface{}) (*transport.Subscription, error) {
	return nil, transport.ErrSubscriptionsUnsupported
}

func (s *stubTransport) Close() error { return nil }

func (s *stubTransport) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.methods)
}

func TestIsWriteMethod(t *testing.T) {
	for _, m := range []string{
		"eth_sendTransaction", "eth_sign", "personal_sign",
		"eth_signTypedData_v4", "eth_accounts",
	} {
		require.True(t, IsWriteMethod(m), m)
	}
	for _, m := range []string{
		"eth_blockNumber", "eth_call", "eth_getBalance", "alchemy_getTokenBalances",
	} {
		require.False(t, IsWriteMethod(m), m)
	}
}

func TestRouterRoutesReads(t *testing.T) {
	read := &stubTransport{}
	r := NewRouter(read, nil)

	got, err := r.Route("eth_blockNumber")
	require.NoError(t, err)
	require.Same(t, transport.Transport(read), got)
}

func TestRouterWriteWithoutProvider(t *testing.T) {
	read := &stubTransport{}
	r := NewRouter(read, nil)

	_, err := r.Route("eth_sendTransaction")
	require.ErrorIs(t, err, ErrNoWriteProvider)
	require.Zero(t, read.calls())
}

func TestRouterSwapsWriteProvider(t *testing.T) {
	read := &stubTransport{}
	write := &stubTransport{}
	r := NewRouter(read, nil)

	r.SetWriteProvider(write)
	got, err := r.Route("eth_sendTransaction")
	require.NoError(t, err)
	require.Same(t, transport.Transport(write), got)

	// Reads are unaffected by the swap.
	got, err = r.Route("eth_call")
	require.NoError(t, err)
	require.Same(t, transport.Transport(read), got)

	// Nil disables the write path again.
	r.SetWriteProvider(nil)
	_, err = r.Route("eth_sendTransaction")
	require.ErrorIs(t, err, ErrNoWriteProvider)
	require.Zero(t, read.calls())
	require.Zero(t, write.calls())
}
