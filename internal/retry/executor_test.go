package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyOperation fails with err until it has been called failures times.
type flakyOperation struct {
	calls    int
	failures int
	err      error
}

func (f *flakyOperation) run(_ context.Context) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return nil
}

func fastExecutor(maxAttempts int) *Executor {
	return NewExecutor(NewPostgreSQLErrorClassifier(),
		NewExponentialBackoff(maxAttempts, WithInitialDelay(time.Millisecond), WithJitter(0)))
}

func TestExecutor_Execute(t *testing.T) {
	transient := &pgconn.PgError{Code: "08006", Message: "connection failure"}
	fatal := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}

	tests := []struct {
		name        string
		maxAttempts int
		failures    int
		err         error
		wantCalls   int
		wantErr     error
	}{
		{"first attempt succeeds", 3, 0, transient, 1, nil},
		{"succeeds after retries", 3, 2, transient, 3, nil},
		{"exhausts attempts", 2, 10, transient, 3, transient},
		{"fatal error not retried", 3, 10, fatal, 1, fatal},
		{"zero attempts", 0, 10, transient, 1, transient},
		{"unlimited attempts", -1, 5, transient, 6, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := &flakyOperation{failures: tt.failures, err: tt.err}

			err := fastExecutor(tt.maxAttempts).Execute(context.Background(), op.run)

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCalls, op.calls)
		})
	}
}

func TestExecutor_OnRetry(t *testing.T) {
	op := &flakyOperation{failures: 2, err: &pgconn.PgError{Code: "53300"}}
	var attempts []int

	base := fastExecutor(5)
	executor := base.WithOnRetry(func(attempt int, err error, _ time.Duration) {
		attempts = append(attempts, attempt)
		assert.Error(t, err)
	})

	require.NoError(t, executor.Execute(context.Background(), op.run))
	assert.Equal(t, []int{0, 1}, attempts)
	assert.Nil(t, base.onRetry, "WithOnRetry must not modify the receiver")
}

func TestExecutor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	executor := NewExecutor(NewPostgreSQLErrorClassifier(),
		NewExponentialBackoff(5, WithInitialDelay(time.Hour), WithJitter(0))).
		WithOnRetry(func(int, error, time.Duration) { cancel() })

	op := &flakyOperation{failures: 10, err: errors.New("connection refused")}
	err := executor.Execute(ctx, op.run)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, op.calls)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, NewExponentialBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewPostgreSQLErrorClassifier(), nil) })
}
