package retry

import (
	"math"
	"math/rand"
	"time"
)

// Backoff computes exponentially growing delays with symmetric jitter.
type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64 // 0.1 spreads each delay by +/-10%

	// Rand returns values in [0, 1); nil uses math/rand.
	Rand func() float64
}

// NewBackoff returns a doubling backoff with 10% jitter.
func NewBackoff(initial, max time.Duration) Backoff {
	return Backoff{Initial: initial, Max: max, Multiplier: 2.0, Jitter: 0.1}
}

// Delay returns the wait before retry number attempt (zero-based).
// The cap is applied before jitter.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := float64(b.Initial) * math.Pow(b.Multiplier, float64(attempt))
	if b.Max > 0 && d > float64(b.Max) {
		d = float64(b.Max)
	}
	if b.Jitter > 0 {
		r := b.Rand
		if r == nil {
			r = rand.Float64
		}
		d *= 1 + b.Jitter*(r()-0.5)*2
	}
	if d < 0 {
		return 0
	}
	return time.Duration(d)
}
