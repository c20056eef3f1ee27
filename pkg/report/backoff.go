package report

import (
	"math"
	"math/rand/v2"
	"time"
)

// Backoff computes the delay before retry attempt n, starting at 1.
type Backoff interface {
	NextInterval(attempt int) time.Duration
}

// ExponentialBackoff grows the delay by Multiplier per attempt, with optional
// jitter, capped at MaxInterval. Zero fields take defaults.
type ExponentialBackoff struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	JitterFactor    float64
}

func (e ExponentialBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := e.InitialInterval
	if initial == 0 {
		initial = 100 * time.Millisecond
	}
	ceiling := e.MaxInterval
	if ceiling == 0 {
		ceiling = 5 * time.Second
	}
	multiplier := e.Multiplier
	if multiplier == 0 {
		multiplier = 2
	}

	interval := float64(initial) * math.Pow(multiplier, float64(attempt-1))
	if e.JitterFactor > 0 {
		interval *= 1 + (rand.Float64()*2-1)*e.JitterFactor
	}
	return time.Duration(math.Min(interval, float64(ceiling)))
}

// DefaultBackoff suits pixel endpoints: short first delay, small jitter.
func DefaultBackoff() Backoff {
	return ExponentialBackoff{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2,
		JitterFactor:    0.1,
	}
}
