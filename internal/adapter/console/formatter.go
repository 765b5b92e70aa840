package console

import (
	"errors"
	"fmt"
	"strings"
	"time"

	nchess "github.com/corentings/chess/v2"
	corechess "github.com/park285/liquid-pressure-chess/internal/chess"
	"github.com/park285/liquid-pressure-chess/internal/msgcat"
	"github.com/park285/liquid-pressure-chess/internal/service/game"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// crushingMateThreshold separates the two checkmate flavors by final pressure.
const crushingMateThreshold = 0.7

// Formatter renders game events into console text using the message catalog.
type Formatter struct {
	cat *msgcat.Catalog
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	if cat == nil {
		cat = msgcat.Default()
	}
	return &Formatter{cat: cat}
}

func (f *Formatter) Banner(total time.Duration) string {
	var sb strings.Builder
	sb.WriteString(f.cat.Text("banner.engaged", map[string]any{"Clock": FormatClock(total)}))
	sb.WriteString("\n")
	sb.WriteString(f.cat.Text("banner.phase", map[string]any{"Phase": PhaseTitle(corechess.PhaseCalm)}))
	sb.WriteString("\n")
	sb.WriteString(f.cat.Text("banner.time_management", nil))
	sb.WriteString("\n")
	return sb.String()
}

func (f *Formatter) ColorPrompt() string {
	return f.cat.Text("prompt.color", nil)
}

func (f *Formatter) MovePrompt() string {
	return f.cat.Text("prompt.opponent_move", nil)
}

func (f *Formatter) Intro(self nchess.Color) string {
	if self == nchess.White {
		return f.cat.Text("intro.white", nil)
	}
	return f.cat.Text("intro.black", nil)
}

func (f *Formatter) Status(s game.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(f.cat.Text("status.separator", nil))
	sb.WriteString("\n")
	sb.WriteString(f.clocks(s.SelfRemaining, s.OpponentRemaining))
	sb.WriteString("\n")
	sb.WriteString(f.cat.Text("status.pressure", map[string]any{
		"Pressure": FormatPercent(s.Pressure),
		"Phase":    PhaseTitle(s.Phase),
	}))
	sb.WriteString("\n")
	sb.WriteString(RenderBoard(s.Position, s.SelfColor))
	if !s.Opening.IsZero() {
		sb.WriteString(f.cat.Text("status.opening", map[string]any{"Opening": s.Opening.String()}))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (f *Formatter) Thinking(d time.Duration) string {
	return f.cat.Text("move.thinking", map[string]any{"Seconds": fmt.Sprintf("%.1f", d.Seconds())})
}

func (f *Formatter) Moved(r game.MoveReport) string {
	if r.Side == corechess.Self {
		return f.cat.Text("move.flows", map[string]any{"Move": r.UCI})
	}
	return f.cat.Text("move.opponent", map[string]any{"Move": r.UCI, "SAN": r.SAN})
}

// InputError maps a rejected opponent line to its re-prompt message.
func (f *Formatter) InputError(err error) string {
	if errors.Is(err, game.ErrIllegalMove) {
		return f.cat.Text("error.illegal", nil)
	}
	return f.cat.Text("error.malformed", nil)
}

func (f *Formatter) EngineError(err error) string {
	return f.cat.Text("error.engine", map[string]any{"Error": err.Error()})
}

func (f *Formatter) GameOver(res game.Result) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(f.cat.Text("status.separator", nil))
	sb.WriteString("\n")
	sb.WriteString(f.cat.Text("gameover.title", nil))
	sb.WriteString("\n")
	if rec := res.Record; rec != nil {
		sb.WriteString(f.clocks(rec.SelfLeft, rec.OpponentLeft))
		sb.WriteString("\n")
	}
	sb.WriteString(f.cat.Text(ReasonKey(res), nil))
	sb.WriteString("\n\n")
	sb.WriteString(f.cat.Text("gameover.final_pressure", map[string]any{"Pressure": FormatPercent(res.FinalPressure)}))
	sb.WriteString("\n")
	if rec := res.Record; rec != nil && len(rec.MovesSAN) > 0 {
		sb.WriteString(f.cat.Text("gameover.moves", map[string]any{"Moves": FormatMoveList(rec.MovesSAN)}))
		sb.WriteString("\n")
		sb.WriteString(f.cat.Text("gameover.result", map[string]any{"Result": rec.Result}))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (f *Formatter) clocks(self, opponent time.Duration) string {
	return f.cat.Text("status.clocks", map[string]any{
		"Self":     FormatClock(self),
		"Opponent": FormatClock(opponent),
	})
}

// ReasonKey picks the game-over message for a result.
func ReasonKey(res game.Result) string {
	switch res.Reason {
	case game.ReasonSelfTimeout:
		return "gameover.self_timeout"
	case game.ReasonOpponentTimeout:
		return "gameover.opponent_timeout"
	case game.ReasonCheckmate:
		if !res.SelfWon() {
			return "gameover.checkmated"
		}
		if res.FinalPressure > crushingMateThreshold {
			return "gameover.checkmate_crushing"
		}
		return "gameover.checkmate_flowing"
	case game.ReasonStalemate:
		return "gameover.stalemate"
	case game.ReasonInsufficientMaterial:
		return "gameover.insufficient_material"
	case game.ReasonFiftyMoveRule:
		return "gameover.fifty_move_rule"
	case game.ReasonRepetition:
		return "gameover.repetition"
	case game.ReasonNoMoves:
		return "gameover.no_moves"
	case game.ReasonQuit:
		return "gameover.quit"
	case game.ReasonCancelled:
		return "gameover.cancelled"
	default:
		return "gameover.ended"
	}
}

// FormatClock renders a remaining time as MM:SS, truncating to whole seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func PhaseTitle(p corechess.Phase) string {
	return cases.Title(language.English).String(p.String())
}

// FormatMoveList numbers SAN moves in pairs: "1. e4 e5 2. Nf3".
func FormatMoveList(san []string) string {
	var sb strings.Builder
	for i, mv := range san {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i%2 == 0 {
			sb.WriteString(fmt.Sprintf("%d. ", i/2+1))
		}
		sb.WriteString(mv)
	}
	return sb.String()
}
