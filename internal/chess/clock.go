package chess

import (
	"time"

	"golang.org/x/exp/constraints"
)

const (
	// ExpectedGameMoves is the game length the per-move budget is planned against.
	ExpectedGameMoves = 40
	DefaultGameLength = 10 * time.Minute
)

type Side int

const (
	Self Side = iota
	Opponent
)

func (s Side) String() string {
	switch s {
	case Self:
		return "self"
	case Opponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// Clock tracks the remaining time of both sides under a fixed total-time control.
type Clock struct {
	total    time.Duration
	self     time.Duration
	opponent time.Duration
	lastTick time.Time
	now      func() time.Time
}

func NewClock(total time.Duration, now func() time.Time) *Clock {
	if total <= 0 {
		total = DefaultGameLength
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{
		total:    total,
		self:     total,
		opponent: total,
		lastTick: now(),
		now:      now,
	}
}

// Tick charges the time elapsed since the previous tick to mover and returns it.
func (c *Clock) Tick(mover Side) time.Duration {
	current := c.now()
	elapsed := current.Sub(c.lastTick)
	if elapsed < 0 {
		elapsed = 0
	}
	c.lastTick = current

	switch mover {
	case Self:
		c.self -= elapsed
	case Opponent:
		c.opponent -= elapsed
	}
	return elapsed
}

func (c *Clock) Remaining(side Side) time.Duration {
	if side == Self {
		return c.self
	}
	return c.opponent
}

func (c *Clock) Expired(side Side) bool {
	return c.Remaining(side) <= 0
}

func (c *Clock) Total() time.Duration {
	return c.total
}

func (c *Clock) TimePressure(remaining time.Duration, moveNumber int) float64 {
	return TimePressure(remaining, c.total, moveNumber)
}

// TimePressure compares the time available per remaining move against the
// even per-move budget of total. 0 means on or ahead of schedule, 1 means out
// of budget.
func TimePressure(remaining, total time.Duration, moveNumber int) float64 {
	movesLeft := ExpectedGameMoves - moveNumber
	if movesLeft <= 0 {
		return 1.0
	}
	if total <= 0 {
		return 1.0
	}
	budget := total.Seconds() / ExpectedGameMoves
	available := remaining.Seconds() / float64(movesLeft)
	return clamp(1.0-available/budget, 0, 1)
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
