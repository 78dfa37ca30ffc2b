package retry

import (
	"context"
	"time"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// Executor runs an operation until it succeeds, fails permanently, or runs out
// of attempts. Safe for concurrent use.
type Executor struct {
	classifier sflink.ErrorClassifier
	strategy   sflink.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an Executor. Panics if classifier or strategy is nil.
func NewExecutor(classifier sflink.ErrorClassifier, strategy sflink.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of e that calls callback before each retry.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// WithLogger returns a copy of e that reports retries through logger.
func (e *Executor) WithLogger(logger sflink.Logger, what string) *Executor {
	return e.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Info("Retrying %s (attempt %d) in %v: %v", what, attempt+1, delay.Round(time.Millisecond), err)
	})
}

// Execute runs operation, retrying transient failures. The last error is returned.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	maxAttempts := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if maxAttempts >= 0 && attempt >= maxAttempts {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = operation(ctx)
	}
	return err
}
