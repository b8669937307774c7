package store

import (
	"log/slog"
	"time"
)

// Retrying retries transient failures of the wrapped store with
// exponential backoff.
type Retrying[R any] struct {
	Store    Store[R]
	Attempts int
	Backoff  time.Duration
	Logger   *slog.Logger

	sleep func(time.Duration)
}

func NewRetrying[R any](s Store[R], attempts int, backoff time.Duration, logger *slog.Logger) *Retrying[R] {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrying[R]{Store: s, Attempts: attempts, Backoff: backoff, Logger: logger, sleep: time.Sleep}
}

func (r *Retrying[R]) Load() ([]R, error) {
	var records []R
	err := r.do("load", func() error {
		var err error
		records, err = r.Store.Load()
		return err
	})
	return records, err
}

func (r *Retrying[R]) Save(records []R) error {
	return r.do("save", func() error { return r.Store.Save(records) })
}

func (r *Retrying[R]) Close() error { return r.Store.Close() }

func (r *Retrying[R]) do(op string, fn func() error) error {
	wait := r.Backoff
	var err error
	for attempt := 1; attempt <= r.Attempts; attempt++ {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if attempt == r.Attempts {
			break
		}
		r.Logger.Warn("store operation failed, retrying", "op", op, "attempt", attempt, "wait", wait, "error", err)
		if r.sleep != nil {
			r.sleep(wait)
		}
		wait *= 2
	}
	return err
}
