// Package ucitest provides a scripted UCI engine for tests that run the test
// binary itself as the engine process.
package ucitest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// HelperEnv gates the helper process; its value is the script.
	HelperEnv = "LP_FAKE_UCI_SCRIPT"
	// HelperTest is the test name the helper process runs under.
	HelperTest = "TestHelperProcess"
)

// Script maps a ply count to the ranked moves the engine reports for it.
// Plies beyond the script report no moves and "bestmove (none)".
type Script [][]string

// Encode renders the script for HelperEnv: plies split by ';', moves by ','.
func (s Script) Encode() string {
	plies := make([]string, len(s))
	for i, moves := range s {
		plies[i] = strings.Join(moves, ",")
	}
	return strings.Join(plies, ";")
}

func ParseScript(raw string) Script {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var s Script
	for _, ply := range strings.Split(raw, ";") {
		var moves []string
		for _, mv := range strings.Split(ply, ",") {
			if mv = strings.TrimSpace(mv); mv != "" {
				moves = append(moves, mv)
			}
		}
		s = append(s, moves)
	}
	return s
}

// Command returns the argv and environment that make the current test binary
// behave as the fake engine.
func Command(s Script) (path string, args []string, env []string) {
	return os.Args[0], []string{"-test.run=^" + HelperTest + "$"}, []string{HelperEnv + "=" + s.Encode(), "LP_FAKE_UCI=1"}
}

// IsHelper reports whether the process was started by Command.
func IsHelper() bool {
	return os.Getenv("LP_FAKE_UCI") == "1"
}

// Main serves the script read from the environment on stdin/stdout and exits.
func Main() {
	Serve(os.Stdin, os.Stdout, ParseScript(os.Getenv(HelperEnv)))
	os.Exit(0)
}

// Serve answers UCI commands from in until "quit" or EOF. Every "position"
// command is echoed back as an "info string" line before the search output.
func Serve(in io.Reader, out io.Writer, script Script) {
	w := bufio.NewWriter(out)
	defer w.Flush()

	var (
		plies    int
		multiPV  = 1
		position string
	)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "uci":
			fmt.Fprintln(w, "id name liquid-fake")
			fmt.Fprintln(w, "uciok")
		case line == "isready":
			fmt.Fprintln(w, "readyok")
		case strings.HasPrefix(line, "setoption name MultiPV value "):
			if n, err := strconv.Atoi(strings.TrimPrefix(line, "setoption name MultiPV value ")); err == nil && n > 0 {
				multiPV = n
			}
		case strings.HasPrefix(line, "position"):
			position = line
			plies = 0
			if idx := strings.Index(line, " moves "); idx >= 0 {
				plies = len(strings.Fields(line[idx+len(" moves "):]))
			}
		case strings.HasPrefix(line, "go"):
			fmt.Fprintf(w, "info string %s\n", position)
			var moves []string
			if plies < len(script) {
				moves = script[plies]
			}
			if len(moves) > multiPV {
				moves = moves[:multiPV]
			}
			for i, mv := range moves {
				fmt.Fprintf(w, "info depth 10 seldepth 12 multipv %d score cp %d nodes 1000 pv %s\n", i+1, 50-i*10, mv)
			}
			if len(moves) == 0 {
				fmt.Fprintln(w, "bestmove (none)")
			} else {
				fmt.Fprintf(w, "bestmove %s\n", moves[0])
			}
		case line == "quit":
			return
		}
		w.Flush()
	}
}
