package openingbook

import (
	"strings"
	"sync"

	chesslib "github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

var (
	ecoOnce sync.Once
	ecoBook *opening.BookECO
)

// Label is the ECO classification of a move sequence.
type Label struct {
	Code  string
	Title string
}

func (l Label) IsZero() bool {
	return l.Code == "" && l.Title == ""
}

func (l Label) String() string {
	if l.IsZero() {
		return ""
	}
	if l.Code == "" {
		return l.Title
	}
	return l.Code + " " + l.Title
}

func book() *opening.BookECO {
	ecoOnce.Do(func() {
		ecoBook = opening.NewBookECO()
	})
	return ecoBook
}

// Classify returns the deepest ECO opening the game's moves match. Games that
// left known theory keep the last matching label.
func Classify(game *chesslib.Game) Label {
	if game == nil {
		return Label{}
	}
	b := book()
	if b == nil {
		return Label{}
	}
	moves := game.Moves()
	if len(moves) == 0 {
		return Label{}
	}
	if eco := b.Find(moves); eco != nil {
		return Label{Code: strings.TrimSpace(eco.Code()), Title: strings.TrimSpace(eco.Title())}
	}
	return Label{}
}
