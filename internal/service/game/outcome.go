package game

import (
	nchess "github.com/corentings/chess/v2"
	corechess "github.com/park285/liquid-pressure-chess/internal/chess"
	"github.com/park285/liquid-pressure-chess/internal/domain"
)

type State int

const (
	AwaitingWhiteMove State = iota
	AwaitingBlackMove
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingWhiteMove:
		return "awaiting_white_move"
	case AwaitingBlackMove:
		return "awaiting_black_move"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type Reason int

const (
	ReasonNone Reason = iota
	ReasonSelfTimeout
	ReasonOpponentTimeout
	ReasonCheckmate
	ReasonStalemate
	ReasonInsufficientMaterial
	ReasonFiftyMoveRule
	ReasonRepetition
	ReasonDraw
	ReasonNoMoves
	ReasonQuit
	ReasonCancelled
)

var reasonNames = map[Reason]string{
	ReasonNone:                 "none",
	ReasonSelfTimeout:          "self_timeout",
	ReasonOpponentTimeout:      "opponent_timeout",
	ReasonCheckmate:            "checkmate",
	ReasonStalemate:            "stalemate",
	ReasonInsufficientMaterial: "insufficient_material",
	ReasonFiftyMoveRule:        "fifty_move_rule",
	ReasonRepetition:           "repetition",
	ReasonDraw:                 "draw",
	ReasonNoMoves:              "no_moves",
	ReasonQuit:                 "quit",
	ReasonCancelled:            "cancelled",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// Termination says why the game stopped and, for decisive endings, who won.
type Termination struct {
	Reason   Reason
	Decisive bool
	Winner   corechess.Side
}

func (t Termination) SelfWon() bool {
	return t.Decisive && t.Winner == corechess.Self
}

type Result struct {
	Termination
	Record        *domain.GameRecord
	FinalPressure float64
	FinalPhase    corechess.Phase
}

func terminationFromBoard(outcome nchess.Outcome, method nchess.Method, selfColor nchess.Color) Termination {
	switch outcome {
	case nchess.WhiteWon, nchess.BlackWon:
		winner := corechess.Opponent
		if (outcome == nchess.WhiteWon) == (selfColor == nchess.White) {
			winner = corechess.Self
		}
		return Termination{Reason: ReasonCheckmate, Decisive: true, Winner: winner}
	case nchess.Draw:
		switch method {
		case nchess.Stalemate:
			return Termination{Reason: ReasonStalemate}
		case nchess.InsufficientMaterial:
			return Termination{Reason: ReasonInsufficientMaterial}
		case nchess.FiftyMoveRule, nchess.SeventyFiveMoveRule:
			return Termination{Reason: ReasonFiftyMoveRule}
		case nchess.ThreefoldRepetition, nchess.FivefoldRepetition:
			return Termination{Reason: ReasonRepetition}
		default:
			return Termination{Reason: ReasonDraw}
		}
	default:
		return Termination{}
	}
}

// resultNotation renders a termination as a PGN result token.
func resultNotation(t Termination, selfColor nchess.Color) string {
	if !t.Decisive {
		switch t.Reason {
		case ReasonStalemate, ReasonInsufficientMaterial, ReasonFiftyMoveRule, ReasonRepetition, ReasonDraw:
			return "1/2-1/2"
		default:
			return "*"
		}
	}
	whiteWon := (t.Winner == corechess.Self) == (selfColor == nchess.White)
	if whiteWon {
		return "1-0"
	}
	return "0-1"
}
