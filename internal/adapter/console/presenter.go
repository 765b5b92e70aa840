package console

import (
	"fmt"
	"io"
	"time"

	nchess "github.com/corentings/chess/v2"
	"github.com/park285/liquid-pressure-chess/internal/service/game"
)

// Presenter writes game events to the terminal. It satisfies game.Observer.
type Presenter struct {
	out io.Writer
	f   *Formatter
}

func NewPresenter(out io.Writer, f *Formatter) *Presenter {
	if f == nil {
		f = NewFormatter(nil)
	}
	return &Presenter{out: out, f: f}
}

var _ game.Observer = (*Presenter)(nil)

func (p *Presenter) Banner(total time.Duration) {
	fmt.Fprintln(p.out, p.f.Banner(total))
}

func (p *Presenter) Intro(self nchess.Color) {
	fmt.Fprintln(p.out, p.f.Intro(self))
	fmt.Fprintln(p.out)
}

func (p *Presenter) TurnStarted(s game.Snapshot) {
	fmt.Fprint(p.out, p.f.Status(s))
}

func (p *Presenter) Thinking(d time.Duration) {
	fmt.Fprintln(p.out, p.f.Thinking(d))
}

func (p *Presenter) Moved(r game.MoveReport) {
	fmt.Fprintln(p.out, p.f.Moved(r))
}

func (p *Presenter) EngineError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(p.out, p.f.EngineError(err))
}

func (p *Presenter) GameOver(res game.Result) {
	fmt.Fprint(p.out, p.f.GameOver(res))
}
