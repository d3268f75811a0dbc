package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// safeSend runs one attempt under its own timeout and turns a panic in the
// channel into an error.
func safeSend(ctx context.Context, ch Channel, m Message, timeout time.Duration) (err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("channel %s panicked: %v", ch.Name(), r)
		}
	}()

	return ch.Send(ctx, m)
}

// deliver attempts ch until it succeeds, the policy is exhausted or stop is
// closed. It returns the number of attempts made and the last error.
func deliver(
	ch Channel,
	m Message,
	policy RetryPolicy,
	stop <-chan struct{},
	logger *zap.Logger,
) (int, error) {

	limit := policy.attempts()
	var err error

	for attempt := 1; attempt <= limit; attempt++ {
		if err = safeSend(context.Background(), ch, m, policy.Timeout); err == nil {
			return attempt, nil
		}

		logger.Warn("notification attempt failed",
			zap.String("channel", ch.Name()),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", limit),
			zap.Uint("booking_id", m.BookingID),
			zap.Error(err),
		)

		if attempt == limit {
			return attempt, err
		}

		select {
		case <-time.After(policy.Backoff):
		case <-stop:
			return attempt, err
		}
	}
	return limit, err
}
