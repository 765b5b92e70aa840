package chess

import (
	"context"
	"math/rand"
	"time"
)

const minThinkingTime = 300 * time.Millisecond

// ThinkingTime returns how long the personality deliberates before committing
// a move. The result never exceeds a tenth of the remaining time.
func ThinkingTime(pressure, timePressure float64, remaining time.Duration, r *rand.Rand) time.Duration {
	var seconds float64
	switch {
	case pressure < 0.3:
		seconds = uniform(r, 2.0, 4.0)
	case pressure < 0.7:
		seconds = uniform(r, 3.0, 6.0)
	default:
		seconds = uniform(r, 1.5, 3.5)
	}

	if timePressure > 0.5 {
		seconds *= 1.0 - timePressure*0.6
	}

	switch {
	case remaining < time.Minute:
		seconds = uniform(r, 0.5, 2.0)
	case remaining < 3*time.Minute:
		seconds = uniform(r, 1.0, 3.0)
	}

	d := time.Duration(seconds * float64(time.Second))
	if d < minThinkingTime {
		d = minThinkingTime
	}
	if limit := remaining / 10; d > limit {
		d = limit
	}
	if d < 0 {
		d = 0
	}
	return d
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// DelayFunc suspends the caller for d or until ctx is done.
type DelayFunc func(ctx context.Context, d time.Duration) error

func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
