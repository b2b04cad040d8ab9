package ai

import (
	"context"
	"errors"
	"log"
	"time"
)

const (
	maxAttempts  = 3
	initialDelay = 1 * time.Second
)

// RetryWithBackoff retries fn with exponential backoff on transient failures.
// Schema validation failures are never retried: a model that produced
// unparseable output once gets no second chance here, the caller decides.
func RetryWithBackoff(ctx context.Context, operation string, fn func() error) error {
	var err error
	delay := initialDelay

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrSchemaValidation) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		log.Printf("[Retry.%s] Attempt %d/%d failed: %v. Retrying in %v...", operation, attempt, maxAttempts, err, delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	log.Printf("[Retry.%s] All %d attempts failed: %v", operation, maxAttempts, err)
	return err
}
