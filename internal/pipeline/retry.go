package pipeline

import (
	"context"
	"log/slog"
	"math"
	"time"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

// RetryingReader retries transport failures of the wrapped reader with
// exponential backoff. Other failures are returned immediately.
type RetryingReader struct {
	reader RowReader
	config model.RetryConfig
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetryingReader wraps reader with the given retry behavior.
func NewRetryingReader(reader RowReader, config model.RetryConfig) *RetryingReader {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.BackoffMultiplier < 1 {
		config.BackoffMultiplier = 1
	}
	return &RetryingReader{
		reader: reader,
		config: config,
		sleep:  sleepContext,
	}
}

func (r *RetryingReader) ReadRows(ctx context.Context, req ReadRequest) ([][]any, error) {
	for attempt := 1; ; attempt++ {
		rows, err := r.reader.ReadRows(ctx, req)
		if err == nil {
			return rows, nil
		}
		if attempt >= r.config.MaxAttempts || !isRetryableError(err) {
			return nil, err
		}

		delay := r.calculateNextDelay(attempt)
		slog.Warn("Row read failed, retrying",
			"range", req.Range.String(),
			"sku", req.SKU,
			"attempt", attempt,
			"max_attempts", r.config.MaxAttempts,
			"delay", delay,
			"error", err)

		if serr := r.sleep(ctx, delay); serr != nil {
			return nil, errors.Wrapf(err, "read abandoned after %d attempts", attempt)
		}
	}
}

// calculateNextDelay returns the backoff before retry number attempt+1.
func (r *RetryingReader) calculateNextDelay(attempt int) time.Duration {
	delay := float64(r.config.InitialDelay) * math.Pow(r.config.BackoffMultiplier, float64(attempt-1))
	if r.config.MaxDelay > 0 && delay > float64(r.config.MaxDelay) {
		return r.config.MaxDelay
	}
	return time.Duration(delay)
}

func isRetryableError(err error) bool {
	return errors.HasCode(err, errors.CodeTransportError)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
