package retry

import (
	"math/rand"
	"time"
)

// Constant retries a fixed number of times with a fixed base delay plus
// bounded uniform jitter. The jitter decorrelates retry storms across
// independent clients sharing the same base interval; the delay before every
// attempt lies in [Interval, Interval+Jitter).
type Constant struct {
	// MaxRetries is the number of retries after the first attempt.
	// 0 means no retries.
	MaxRetries int

	// Interval is the base delay before each retry.
	Interval time.Duration

	// Jitter is the exclusive upper bound on the random addition to
	// Interval. 0 disables jitter.
	Jitter time.Duration
}

// Next returns the jittered delay for the given attempt number.
func (c *Constant) Next(attempt int) (time.Duration, bool) {
	if attempt > c.MaxRetries {
		return 0, false
	}
	delay := c.Interval
	if c.Jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(c.Jitter)))
	}
	return delay, true
}
