package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func failN(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_ = cb.Execute(context.Background(), func(_ context.Context) error { return errBoom })
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute})

	failN(cb, 2)
	assert.Equal(t, CircuitClosed, cb.State())
	assert.Equal(t, 2, cb.Failures())

	failN(cb, 1)
	assert.Equal(t, CircuitOpen, cb.State())

	called := false
	err := cb.Execute(context.Background(), func(_ context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3})

	failN(cb, 2)
	require.NoError(t, cb.Execute(context.Background(), func(_ context.Context) error { return nil }))
	assert.Zero(t, cb.Failures())
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, ResetTimeout: 100 * time.Millisecond})
	cb.nowFunc = func() time.Time { return now }

	failN(cb, 2)
	require.Equal(t, CircuitOpen, cb.State())

	cb.nowFunc = func() time.Time { return now.Add(200 * time.Millisecond) }
	assert.Equal(t, CircuitHalfOpen, cb.State())

	require.NoError(t, cb.Execute(context.Background(), func(_ context.Context) error { return nil }))
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, ResetTimeout: 100 * time.Millisecond})
	cb.nowFunc = func() time.Time { return now }
	failN(cb, 2)

	now = now.Add(200 * time.Millisecond)
	cb.nowFunc = func() time.Time { return now }
	failN(cb, 1)

	assert.Equal(t, CircuitOpen, cb.State())
}

func TestCircuitBreaker_ShouldTripAndStateChange(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		ShouldTrip:       IsTransient,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	failN(cb, 3)
	assert.Equal(t, CircuitClosed, cb.State(), "non-transient errors do not trip")

	_ = cb.Execute(context.Background(), func(_ context.Context) error {
		return NewTransientError(errBoom, 503)
	})
	assert.Equal(t, CircuitOpen, cb.State())
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestExecuteVal(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig())
	val, err := ExecuteVal(context.Background(), cb, func(_ context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestCircuitBreaker_ConcurrentAccess(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1000})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = cb.Execute(context.Background(), func(_ context.Context) error {
				if i%2 == 0 {
					return errBoom
				}
				return nil
			})
			_ = cb.State()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(9).String())
}
