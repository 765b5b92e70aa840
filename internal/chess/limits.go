package chess

import (
	"math/rand"
	"strings"

	"github.com/park285/liquid-pressure-chess/internal/chess/uci"
)

const (
	MinSkillLevel = 0
	MaxSkillLevel = 20

	hurriedCandidates = 3
	sharpCandidates   = 6
	normalCandidates  = 4
)

// CandidateCount sizes the engine's MultiPV list for the coming move.
func CandidateCount(timePressure, tension float64) int {
	switch {
	case timePressure > 0.8:
		return hurriedCandidates
	case tension > 0.7:
		return sharpCandidates
	default:
		return normalCandidates
	}
}

// SkillLevel draws the engine skill for the coming move. Time trouble lowers
// the range slightly.
func SkillLevel(timePressure float64, r *rand.Rand) int {
	if timePressure > 0.7 {
		return 16 + r.Intn(3)
	}
	return 18 + r.Intn(3)
}

type SearchLimits struct {
	Depth          int
	MoveTimeMillis int
}

func (l SearchLimits) uci() uci.Limits {
	return uci.Limits{Depth: l.Depth, MoveTimeMillis: l.MoveTimeMillis}
}

func BuildGoCommand(l SearchLimits) ([]string, error) {
	return uci.GoTokens(l.uci())
}

func FormatGoCommand(l SearchLimits) (string, error) {
	args, err := BuildGoCommand(l)
	if err != nil {
		return "", err
	}
	return strings.Join(args, " "), nil
}
