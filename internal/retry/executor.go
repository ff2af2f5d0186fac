package retry

import (
	"context"
	"time"
)

// Executor repeats an operation while it fails with transient errors.
// It holds no per-call state and is safe for concurrent use.
type Executor struct {
	attempts    int // retries after the first call; negative retries forever
	backoff     Backoff
	isTransient func(error) bool
	onRetry     func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an Executor allowing up to retries extra attempts.
func NewExecutor(retries int, backoff Backoff) *Executor {
	return &Executor{attempts: retries, backoff: backoff, isTransient: IsTransient}
}

// WithClassifier returns a copy of e that uses isTransient to decide
// whether a failure is retried.
func (e *Executor) WithClassifier(isTransient func(error) bool) *Executor {
	clone := *e
	clone.isTransient = isTransient
	return &clone
}

// WithOnRetry returns a copy of e that calls callback before every wait.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation until it succeeds, fails fatally, the retries are
// used up or ctx is done. It returns the last operation error, or the
// context error when cancellation interrupted a wait.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	for attempt := 0; err != nil && e.isTransient(err) && (e.attempts < 0 || attempt < e.attempts); attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.backoff.Delay(attempt)
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
