package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a remote backend that could not be reached. Connecting
// retries errors that wrap it.
var ErrNetwork = errors.New("cache backend unreachable")

// Backoff is the retry policy for connecting to a remote backend.
type Backoff struct {
	// Attempts is the total number of tries. Values below 1 mean 1.
	Attempts int
	// Initial is the wait after the first failure. It doubles after each
	// further failure, up to Max when Max is set.
	Initial time.Duration
	Max     time.Duration
}

// DefaultBackoff tries three times, waiting one then two seconds.
var DefaultBackoff = Backoff{Attempts: 3, Initial: time.Second, Max: 8 * time.Second}

// orDefault returns DefaultBackoff for the zero policy.
func (b Backoff) orDefault() Backoff {
	if b == (Backoff{}) {
		return DefaultBackoff
	}
	return b
}

// Retry calls fn until it succeeds, fails with an error not wrapping
// ErrNetwork, or the attempts run out. The last error is returned.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Initial
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !errors.Is(err, ErrNetwork) || attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
}
