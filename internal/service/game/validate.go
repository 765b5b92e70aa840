package game

import (
	"errors"
	"regexp"
	"strings"
)

const QuitKeyword = "quit"

var (
	ErrQuit          = errors.New("opponent quit the game")
	ErrMalformedMove = errors.New("malformed move")
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is already over")
)

var uciMovePattern = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbn]?$`)

// ParseOpponentMove validates one line of opponent input against the board
// without changing it. It returns the move in lowercase UCI notation.
func ParseOpponentMove(b *Board, text string) (string, error) {
	move := strings.ToLower(strings.TrimSpace(text))
	if move == QuitKeyword {
		return "", ErrQuit
	}
	if !uciMovePattern.MatchString(move) {
		return "", ErrMalformedMove
	}
	if b == nil || !b.IsLegal(move) {
		return "", ErrIllegalMove
	}
	return move, nil
}
