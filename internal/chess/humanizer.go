package chess

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

const (
	BlitzThreshold = 30 * time.Second

	blitzTopProbability    = 0.8
	calmSolidProbability   = 0.7
	calmSolidWindow        = 3
	calmNoiseFloor         = 0.2
	calmNoiseScale         = 0.3
	checkWeightBonus       = 1.3
	captureWeightBonus     = 1.2
	importantWeightBonus   = 1.25
	buildingTimeDamping    = 0.2
	crushingTopProbability = 0.8
	crushingTimeDamping    = 0.3
)

var ErrNoCandidates = errors.New("no suggested moves")

type PieceKind int

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Candidate is one engine suggestion annotated with the position facts the
// selector weighs.
type Candidate struct {
	Move      string
	Rank      int
	EvalCP    int
	Principal []string
	Piece     PieceKind
	Capture   bool
	// Important is set when the move lands on a central square or near the enemy king.
	Important bool
}

type SelectInput struct {
	Candidates   []Candidate
	Phase        Phase
	TimePressure float64
	Tension      float64
	Remaining    time.Duration
	InCheck      bool
}

// SelectMove picks one candidate according to the clock and the current phase.
// Candidates must be ordered best first.
func SelectMove(in SelectInput, r *rand.Rand) (Candidate, error) {
	if len(in.Candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if in.Remaining < BlitzThreshold {
		return blitzChoice(in.Candidates, r), nil
	}

	switch in.Phase {
	case PhaseCalm:
		return calmChoice(in.Candidates, in.InCheck, in.TimePressure, r), nil
	case PhaseBuilding:
		return buildingChoice(in.Candidates, in.InCheck, in.TimePressure, r), nil
	default:
		return crushingChoice(in.Candidates, in.TimePressure, r), nil
	}
}

func blitzChoice(candidates []Candidate, r *rand.Rand) Candidate {
	if r.Float64() < blitzTopProbability || len(candidates) < 2 {
		return candidates[0]
	}
	return candidates[1]
}

func calmChoice(candidates []Candidate, inCheck bool, timePressure float64, r *rand.Rand) Candidate {
	solid := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if isSolid(c, inCheck) {
			solid = append(solid, c)
		}
	}

	if len(solid) > 0 && r.Float64() < calmSolidProbability {
		window := min(calmSolidWindow, len(solid))
		return solid[r.Intn(window)]
	}

	if r.Float64() < math.Max(calmNoiseFloor, timePressure*calmNoiseScale) {
		if len(candidates) > 3 {
			return candidates[1+r.Intn(3)]
		}
		return candidates[0]
	}
	return candidates[0]
}

func isSolid(c Candidate, inCheck bool) bool {
	if inCheck || c.Capture {
		return false
	}
	switch c.Piece {
	case Pawn, Knight, Bishop:
		return true
	default:
		return false
	}
}

func buildingChoice(candidates []Candidate, inCheck bool, timePressure float64, r *rand.Rand) Candidate {
	weights := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		w := PressureWeight(c, inCheck) * (1.0 - timePressure*buildingTimeDamping)
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return candidates[0]
	}

	threshold := r.Float64() * total
	for i, w := range weights {
		threshold -= w
		if threshold < 0 {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}

// PressureWeight is the unnormalized sampling weight of a candidate in the
// building phase, before time damping.
func PressureWeight(c Candidate, inCheck bool) float64 {
	w := 1.0 / float64(c.Rank+1)
	if inCheck {
		w *= checkWeightBonus
	}
	if c.Capture {
		w *= captureWeightBonus
	}
	if c.Important {
		w *= importantWeightBonus
	}
	return w
}

func crushingChoice(candidates []Candidate, timePressure float64, r *rand.Rand) Candidate {
	if r.Float64() < crushingTopProbability-timePressure*crushingTimeDamping {
		return candidates[0]
	}
	if len(candidates) > 2 {
		return candidates[1+r.Intn(2)]
	}
	return candidates[0]
}
