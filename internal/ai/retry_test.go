package ai_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/learnity/backend/internal/ai"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := ai.RetryWithBackoff(context.Background(), "Test", func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping backoff test in short mode")
	}

	calls := 0
	err := ai.RetryWithBackoff(context.Background(), "Test", func() error {
		calls++
		if calls < 2 {
			return errors.New("connection reset")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping backoff test in short mode")
	}

	calls := 0
	transient := errors.New("timeout")
	err := ai.RetryWithBackoff(context.Background(), "Test", func() error {
		calls++
		return transient
	})
	if !errors.Is(err, transient) {
		t.Errorf("error = %v, want the last transient error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryNeverRetriesSchemaFailures(t *testing.T) {
	calls := 0
	err := ai.RetryWithBackoff(context.Background(), "Test", func() error {
		calls++
		return fmt.Errorf("%w: bad shape", ai.ErrSchemaValidation)
	})
	if !errors.Is(err, ai.ErrSchemaValidation) {
		t.Errorf("error = %v, want ErrSchemaValidation", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (schema failures are terminal)", calls)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := ai.RetryWithBackoff(ctx, "Test", func() error {
		calls++
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
