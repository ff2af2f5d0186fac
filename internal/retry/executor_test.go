package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// mockOperation counts invocations and fails until failUntil.
type mockOperation struct {
	invocations  int
	failUntil    int // fail for invocations < failUntil
	transientErr error
	fatalErr     error
}

func (m *mockOperation) execute(ctx context.Context) error {
	m.invocations++

	if m.invocations < m.failUntil {
		if m.transientErr != nil {
			return m.transientErr
		}
		return &pgconn.PgError{Code: "08006", Message: "connection failure"}
	}

	if m.invocations == m.failUntil && m.fatalErr != nil {
		return m.fatalErr
	}

	return nil
}

func fastBackoff() Backoff {
	return Backoff{Initial: time.Millisecond, Max: 5 * time.Millisecond, Multiplier: 2}
}

func TestExecutor_Execute_SuccessOnFirstAttempt(t *testing.T) {
	op := &mockOperation{failUntil: 1}

	err := NewExecutor(3, fastBackoff()).Execute(context.Background(), op.execute)

	if err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_Execute_SuccessAfterRetries(t *testing.T) {
	op := &mockOperation{failUntil: 4}

	err := NewExecutor(5, fastBackoff()).Execute(context.Background(), op.execute)

	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if op.invocations != 4 {
		t.Errorf("Expected 4 invocations, got %d", op.invocations)
	}
}

func TestExecutor_Execute_FatalErrorNoRetry(t *testing.T) {
	fatal := &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}
	op := &mockOperation{failUntil: 1, fatalErr: fatal}

	err := NewExecutor(5, fastBackoff()).Execute(context.Background(), op.execute)

	if !errors.Is(err, fatal) {
		t.Errorf("Expected fatal error, got %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_Execute_ExhaustsRetries(t *testing.T) {
	op := &mockOperation{failUntil: 100}

	err := NewExecutor(2, fastBackoff()).Execute(context.Background(), op.execute)

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "08006" {
		t.Errorf("Expected last transient error, got %v", err)
	}
	if op.invocations != 3 {
		t.Errorf("Expected 3 invocations (1 + 2 retries), got %d", op.invocations)
	}
}

func TestExecutor_Execute_ZeroRetries(t *testing.T) {
	op := &mockOperation{failUntil: 100}

	err := NewExecutor(0, fastBackoff()).Execute(context.Background(), op.execute)

	if err == nil {
		t.Fatal("Expected error")
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_Execute_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	op := &mockOperation{failUntil: 100}

	executor := NewExecutor(5, Backoff{Initial: time.Hour, Max: time.Hour, Multiplier: 1}).
		WithOnRetry(func(int, error, time.Duration) { cancel() })

	err := executor.Execute(ctx, op.execute)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_WithOnRetry_ReportsAttempts(t *testing.T) {
	op := &mockOperation{failUntil: 3}
	var attempts []int

	base := NewExecutor(5, fastBackoff())
	withCallback := base.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
	})

	if err := withCallback.Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(attempts) != 2 || attempts[0] != 0 || attempts[1] != 1 {
		t.Errorf("Expected attempts [0 1], got %v", attempts)
	}
	if base.onRetry != nil {
		t.Error("WithOnRetry must not modify the receiver")
	}
}

func TestExecutor_WithClassifier(t *testing.T) {
	op := &mockOperation{failUntil: 3, transientErr: errors.New("flaky")}

	executor := NewExecutor(5, fastBackoff()).WithClassifier(func(err error) bool {
		return err.Error() == "flaky"
	})

	if err := executor.Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if op.invocations != 3 {
		t.Errorf("Expected 3 invocations, got %d", op.invocations)
	}
}
