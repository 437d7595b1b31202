package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"
)

// permanentError marks a failure that must not be retried (client errors,
// auth failures, malformed payloads).
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return &permanentError{err: err}
}

// withRetry runs fn up to attempts times with doubling backoff. Permanent
// failures return immediately and are unwrapped.
func withRetry(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	delay := 250 * time.Millisecond
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}

// classifyGoogleErr splits Google API failures into retryable and permanent:
// 5xx and transport errors retry, everything else does not.
func classifyGoogleErr(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code < 500 {
		return permanent(err)
	}
	return err
}
