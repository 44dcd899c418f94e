package service

import (
	"context"
	"log/slog"
	"time"

	"takosu/internal/microservices/notify"
)

// LongPoll holds a request open until new rows exist or the timeout passes.
// Rows are re-read on every notifier wake-up and on every interval tick, so a
// lost wake-up only delays delivery by one interval.
type LongPoll struct {
	notifier notify.Notifier
	timeout  time.Duration
	interval time.Duration
	logger   *slog.Logger
}

func NewLongPoll(notifier notify.Notifier, timeout, interval time.Duration, logger *slog.Logger) *LongPoll {
	if logger == nil {
		logger = slog.Default()
	}
	return &LongPoll{notifier: notifier, timeout: timeout, interval: interval, logger: logger}
}

// waitFor returns the first non-empty fetch result. An expired or cancelled
// wait yields an empty, non-nil slice.
func waitFor[T any](ctx context.Context, lp *LongPoll, topic string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, lp.timeout)
	defer cancel()

	// subscribe before the first read so a write between the two is not missed
	var wake <-chan struct{}
	if lp.notifier != nil {
		ch, unsubscribe, err := lp.notifier.Subscribe(ctx, topic)
		if err != nil {
			lp.logger.Warn("long poll subscribe failed, falling back to interval", "topic", topic, "error", err)
		} else {
			wake = ch
			defer unsubscribe()
		}
	}

	ticker := time.NewTicker(lp.interval)
	defer ticker.Stop()

	for {
		items, err := fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return []T{}, nil
			}
			return nil, err
		}
		if len(items) > 0 {
			return items, nil
		}

		select {
		case <-ctx.Done():
			return []T{}, nil
		case <-wake:
		case <-ticker.C:
		}
	}
}

// wake tells waiting pollers to look again. Failures only cost latency.
func (lp *LongPoll) wake(ctx context.Context, topic string) {
	if lp.notifier == nil {
		return
	}
	if err := lp.notifier.Publish(ctx, topic); err != nil {
		lp.logger.Warn("long poll wake-up failed", "topic", topic, "error", err)
	}
}
