package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	nchess "github.com/corentings/chess/v2"
	"github.com/park285/liquid-pressure-chess/internal/service/game"
)

type lineResult struct {
	text string
	err  error
}

// Prompter reads operator input. Lines are scanned on a background goroutine
// so a pending read can be abandoned when ctx is cancelled.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	f     *Formatter
	once  sync.Once
	lines chan lineResult
}

func NewPrompter(in io.Reader, out io.Writer, f *Formatter) *Prompter {
	if f == nil {
		f = NewFormatter(nil)
	}
	return &Prompter{in: in, out: out, f: f, lines: make(chan lineResult)}
}

var _ game.OpponentInput = (*Prompter)(nil)

func (p *Prompter) start() {
	go func() {
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			p.lines <- lineResult{text: scanner.Text()}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		p.lines <- lineResult{err: err}
		close(p.lines)
	}()
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	p.once.Do(p.start)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return res.text, res.err
	}
}

// AskColor asks which color the personality plays.
func (p *Prompter) AskColor(ctx context.Context) (nchess.Color, error) {
	fmt.Fprint(p.out, p.f.ColorPrompt())
	line, err := p.readLine(ctx)
	if err != nil {
		return nchess.NoColor, err
	}
	return ParseColor(line), nil
}

// ParseColor maps "w" or "white" to White; every other answer means Black.
func ParseColor(text string) nchess.Color {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "w", "white":
		return nchess.White
	default:
		return nchess.Black
	}
}

// ReadMove prompts until the operator enters a legal move or quits. End of
// input counts as quitting.
func (p *Prompter) ReadMove(ctx context.Context, b *game.Board) (string, error) {
	for {
		fmt.Fprint(p.out, p.f.MovePrompt())
		line, err := p.readLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", game.ErrQuit
			}
			return "", err
		}
		move, err := game.ParseOpponentMove(b, line)
		switch {
		case err == nil:
			return move, nil
		case errors.Is(err, game.ErrQuit):
			return "", err
		default:
			fmt.Fprintln(p.out, p.f.InputError(err))
		}
	}
}
