package chess

import (
	"math"
	"time"
)

const (
	momentumStep       = 0.06
	buildingThreshold  = 0.4
	crushingThreshold  = 0.8
	complexityDivisor  = 20.0
	timeUsageSaturate  = 5 * time.Second
	fullPieceSet       = 32.0
	tensionMoveDivisor = 50.0
)

type Phase int

const (
	PhaseCalm Phase = iota
	PhaseBuilding
	PhaseCrushing
)

func (p Phase) String() string {
	switch p {
	case PhaseCalm:
		return "calm flow"
	case PhaseBuilding:
		return "building waves"
	case PhaseCrushing:
		return "crushing tide"
	default:
		return "unknown"
	}
}

// PhaseFor discretizes a pressure value. Lower bounds are inclusive.
func PhaseFor(pressure float64) Phase {
	switch {
	case pressure < buildingThreshold:
		return PhaseCalm
	case pressure < crushingThreshold:
		return PhaseBuilding
	default:
		return PhaseCrushing
	}
}

// Features are the position facts the personality reads from the rules library.
type Features struct {
	PieceCount       int
	LegalMoves       int
	InCheck          bool
	CaptureAvailable bool
}

// Complexity is the legal move count scaled by 20. It is not capped.
func Complexity(f Features) float64 {
	return float64(f.LegalMoves) / complexityDivisor
}

// Tension scores how sharp a position is for sizing the candidate list.
// It scales legal moves by 50, unlike Complexity.
func Tension(f Features) float64 {
	tension := float64(f.PieceCount) / fullPieceSet * 0.3
	if f.InCheck {
		tension += 0.2
	}
	if f.CaptureAvailable {
		tension += 0.2
	}
	tension += math.Min(0.3, float64(f.LegalMoves)/tensionMoveDivisor)
	return math.Min(1.0, tension)
}

type PressureState struct {
	momentum float64
	pressure float64
	phase    Phase
}

func NewPressureState() *PressureState {
	return &PressureState{phase: PhaseCalm}
}

func (s *PressureState) Momentum() float64 { return s.momentum }
func (s *PressureState) Pressure() float64 { return s.pressure }
func (s *PressureState) Phase() Phase      { return s.phase }

// RecordMove updates the state after a ply. Only own moves build momentum;
// every ply recomputes pressure from the resulting position.
func (s *PressureState) RecordMove(isSelf bool, f Features, timeUsed time.Duration) {
	if isSelf {
		s.momentum = math.Min(1.0, s.momentum+momentumStep)
	}
	efficiency := clamp(timeUsed.Seconds()/timeUsageSaturate.Seconds(), 0, 1)
	s.pressure = math.Min(1.0, s.momentum*0.6+Complexity(f)*0.3+efficiency*0.1)
	s.phase = PhaseFor(s.pressure)
}
