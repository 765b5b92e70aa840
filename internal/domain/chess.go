package domain

import "time"

// GameRecord summarizes one finished (or abandoned) game.
type GameRecord struct {
	ID            string
	SelfColor     string
	MovesUCI      []string
	MovesSAN      []string
	Result        string
	Termination   string
	Opening       string
	StartedAt     time.Time
	EndedAt       time.Time
	Duration      time.Duration
	SelfLeft      time.Duration
	OpponentLeft  time.Duration
	FinalPressure float64
}

func (r *GameRecord) Plies() int {
	if r == nil {
		return 0
	}
	return len(r.MovesUCI)
}
