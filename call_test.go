package courier

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCallbackFiresExactlyOnceOnSuccess(t *testing.T) {
	call := newCall(func() (json.RawMessage, error) {
		return json.RawMessage(`"value"`), nil
	})

	var fired atomic.Int32
	done := make(chan struct{})
	call.OnDone(func(err error, result json.RawMessage) {
		fired.Add(1)
		require.NoError(t, err)
		require.JSONEq(t, `"value"`, string(result))
		close(done)
	})

	<-done
	// The awaited outcome matches what the callback saw.
	result, err := call.Wait(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `"value"`, string(result))
	require.Equal(t, int32(1), fired.Load())
}

func TestCallbackFiresExactlyOnceOnFailure(t *testing.T) {
	sentinel := errors.New("boom")
	call := newCall(func() (json.RawMessage, error) {
		return nil, sentinel
	})

	var fired atomic.Int32
	done := make(chan struct{})
	call.OnDone(func(err error, result json.RawMessage) {
		fired.Add(1)
		require.ErrorIs(t, err, sentinel)
		require.Nil(t, result)
		close(done)
	})

	<-done
	_, err := call.Wait(context.Background())
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, int32(1), fired.Load())
}

func TestCallbackAfterSettlementFiresImmediately(t *testing.T) {
	call := newCall(func() (json.RawMessage, error) {
		return json.RawMessage(`1`), nil
	})
	<-call.Done()

	var fired atomic.Int32
	call.OnDone(func(err error, result json.RawMessage) {
		fired.Add(1)
	})
	require.Equal(t, int32(1), fired.Load())
}

func TestCallbackNotBeforeSettlement(t *testing.T) {
	release := make(chan struct{})
	var executions atomic.Int32
	call := newCall(func() (json.RawMessage, error) {
		executions.Add(1)
		<-release
		return json.RawMessage(`1`), nil
	})

	var fired atomic.Int32
	call.OnDone(func(err error, result json.RawMessage) {
		fired.Add(1)
	})

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, fired.Load(), "callback fired before the operation settled")

	close(release)
	<-call.Done()
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, time.Millisecond)

	// Neither awaiting nor the callback re-executed the operation.
	_, err := call.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), executions.Load())
}

func TestCallWaitHonorsContext(t *testing.T) {
	call := newCall(func() (json.RawMessage, error) {
		select {} // never settles
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := call.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
