package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hedeqiang/courier/retry"
	"github.com/hedeqiang/courier/transport"
)

func okHandler(result string) Handler {
	return func(ctx context.Context, req *transport.Request) (json.RawMessage, error) {
		return json.RawMessage(result), nil
	}
}

func failHandler(err error) Handler {
	return func(ctx context.Context, req *transport.Request) (json.RawMessage, error) {
		return nil, err
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return Func(func(next Handler) Handler {
			return func(ctx context.Context, req *transport.Request) (json.RawMessage, error) {
				order = append(order, name)
				return next(ctx, req)
			}
		})
	}

	h := Chain(okHandler(`"ok"`), tag("first"), tag("second"), tag("third"))
	_, err := h(context.Background(), &transport.Request{Method: "eth_chainId"})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestChainShortCircuit(t *testing.T) {
	reached := false
	inner := func(ctx context.Context, req *transport.Request) (json.RawMessage, error) {
		reached = true
		return nil, nil
	}
	canned := Func(func(next Handler) Handler {
		return func(ctx context.Context, req *transport.Request) (json.RawMessage, error) {
			return json.RawMessage(`"cached"`), nil
		}
	})

	result, err := Chain(inner, canned)(context.Background(), &transport.Request{Method: "eth_chainId"})
	require.NoError(t, err)
	require.JSONEq(t, `"cached"`, string(result))
	require.False(t, reached)
}

func TestLoggerRecordsOutcome(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := NewLogger(zap.New(core)).Wrap(okHandler(`"ok"`))

	_, err := h(context.Background(), &transport.Request{Method: "eth_blockNumber"})
	require.NoError(t, err)
	require.Equal(t, 1, logs.FilterMessage("rpc call").Len())

	h = NewLogger(zap.New(core)).Wrap(failHandler(errors.New("boom")))
	_, err = h(context.Background(), &transport.Request{Method: "eth_blockNumber"})
	require.Error(t, err)
	require.Equal(t, 1, logs.FilterMessage("rpc call failed").Len())
}

func TestMetricsCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ok := m.Wrap(okHandler(`"ok"`))
	fail := m.Wrap(failHandler(errors.New("boom")))

	req := &transport.Request{Method: "eth_call"}
	_, _ = ok(context.Background(), req)
	_, _ = ok(context.Background(), req)
	_, _ = fail(context.Background(), req)

	require.Equal(t, float64(2), testutil.ToFloat64(
		m.requests.WithLabelValues("eth_call", "ok")))
	require.Equal(t, float64(1), testutil.ToFloat64(
		m.requests.WithLabelValues("eth_call", "error")))
}

func TestRateLimitBlocksUntilToken(t *testing.T) {
	rl := NewRateLimit(100, 1)
	h := rl.Wrap(okHandler(`"ok"`))
	req := &transport.Request{Method: "eth_call"}

	start := time.Now()
	_, err := h(context.Background(), req)
	require.NoError(t, err)
	_, err = h(context.Background(), req)
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond,
		"second call must wait for the bucket to refill")
}

func TestRateLimitHonorsContext(t *testing.T) {
	rl := NewRateLimit(0.001, 1)
	h := rl.Wrap(okHandler(`"ok"`))
	req := &transport.Request{Method: "eth_call"}

	_, err := h(context.Background(), req)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = h(ctx, req)
	require.Error(t, err)
}

func TestBreakerTripsOnTransportFaults(t *testing.T) {
	b := NewBreaker(retry.NewCircuitBreaker(2, time.Minute))
	h := b.Wrap(failHandler(&transport.HTTPError{Status: 503, Body: "unavailable"}))
	req := &transport.Request{Method: "eth_call"}

	_, err := h(context.Background(), req)
	require.Error(t, err)
	_, err = h(context.Background(), req)
	require.Error(t, err)

	_, err = h(context.Background(), req)
	require.ErrorIs(t, err, ErrCircuitOpen)
}

func TestBreakerIgnoresApplicationErrors(t *testing.T) {
	b := NewBreaker(retry.NewCircuitBreaker(1, time.Minute))
	h := b.Wrap(failHandler(&transport.Error{Code: -32602, Message: "invalid params"}))
	req := &transport.Request{Method: "eth_call"}

	for i := 0; i < 5; i++ {
		_, err := h(context.Background(), req)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrCircuitOpen,
			"well-formed responses mean the endpoint is healthy")
	}
}
