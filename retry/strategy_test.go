package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConstantDelayBounds(t *testing.T) {
	c := &Constant{
		MaxRetries: 5,
		Interval:   100 * time.Millisecond,
		Jitter:     50 * time.Millisecond,
	}

	for attempt := 1; attempt <= 5; attempt++ {
		for i := 0; i < 100; i++ {
			delay, ok := c.Next(attempt)
			require.True(t, ok)
			require.GreaterOrEqual(t, delay, 100*time.Millisecond)
			require.Less(t, delay, 150*time.Millisecond)
		}
	}

	_, ok := c.Next(6)
	require.False(t, ok)
}

func TestConstantZeroJitter(t *testing.T) {
	c := &Constant{MaxRetries: 1, Interval: time.Second}
	delay, ok := c.Next(1)
	require.True(t, ok)
	require.Equal(t, time.Second, delay)
}

func TestConstantZeroRetries(t *testing.T) {
	c := &Constant{MaxRetries: 0, Interval: time.Second}
	_, ok := c.Next(1)
	require.False(t, ok)
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	b := &Backoff{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
	}

	d1, ok := b.Next(1)
	require.True(t, ok)
	require.Equal(t, time.Second, d1)

	d2, _ := b.Next(2)
	require.Equal(t, 2*time.Second, d2)

	d4, _ := b.Next(4)
	require.Equal(t, 5*time.Second, d4, "delay capped at MaxDelay")

	_, ok = b.Next(11)
	require.False(t, ok)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	var attempts int
	err := Do(context.Background(), &Constant{MaxRetries: 3, Interval: time.Millisecond}, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestDoReturnsLastErrorWhenExhausted(t *testing.T) {
	var attempts int
	last := errors.New("attempt 3")
	err := Do(context.Background(), &Constant{MaxRetries: 2, Interval: time.Millisecond}, func(ctx context.Context) error {
		attempts++
		if attempts == 3 {
			return last
		}
		return errors.New("transient")
	})
	require.ErrorIs(t, err, last)
	require.Equal(t, 3, attempts)
}

func TestDoStopsOnPermanent(t *testing.T) {
	sentinel := errors.New("application error")
	var attempts int
	err := Do(context.Background(), &Constant{MaxRetries: 5, Interval: time.Millisecond}, func(ctx context.Context) error {
		attempts++
		return Permanent(sentinel)
	})
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, attempts, "permanent failures take exactly one attempt")
}

func TestPermanentNil(t *testing.T) {
	require.NoError(t, Permanent(nil))
}

func TestDoHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, &Constant{MaxRetries: 5, Interval: time.Minute}, func(ctx context.Context) error {
		return errors.New("transient")
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCircuitBreakerTransitions(t *testing.T) {
	cb := NewCircuitBreaker(2, 20*time.Millisecond)
	require.Equal(t, Closed, cb.CurrentState())
	require.True(t, cb.Allow())

	cb.RecordFailure()
	require.Equal(t, Closed, cb.CurrentState())
	cb.RecordFailure()
	require.Equal(t, Open, cb.CurrentState())
	require.False(t, cb.Allow())

	// After the reset timeout, one probe is admitted.
	time.Sleep(30 * time.Millisecond)
	require.True(t, cb.Allow())
	require.Equal(t, HalfOpen, cb.CurrentState())
	require.False(t, cb.Allow(), "only one probe in half-open")

	cb.RecordSuccess()
	require.Equal(t, Closed, cb.CurrentState())
	require.True(t, cb.Allow())
}

func TestCircuitBreakerFailedProbeReopens(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)
	cb.RecordFailure()
	require.Equal(t, Open, cb.CurrentState())

	time.Sleep(20 * time.Millisecond)
	require.True(t, cb.Allow())
	cb.RecordFailure()
	require.Equal(t, Open, cb.CurrentState())
	require.False(t, cb.Allow())
}
