package bei

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nelhage/blau/ai"
	"github.com/nelhage/blau/blau"
	"github.com/rs/zerolog/log"
)

// Engine serves the engine protocol on a pair of streams. Every
// command except quit gets one reply line, preceded for "bei" by the
// engine's id. Failures are reported as "error <kind> <message>" and
// the engine keeps serving.
type Engine struct {
	// PlayerFactory builds the policy used to answer "go". It defaults
	// to a greedy player with default weights.
	PlayerFactory func(players int) ai.Player

	in  *bufio.Reader
	out io.Writer

	player ai.Player
	state  blau.State
	loaded bool
}

func NewEngine(in io.Reader, out io.Writer) *Engine {
	return &Engine{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Error kinds reported by the engine.
const (
	KindInvalidMove    = "invalidmove"
	KindBounds         = "bounds"
	KindMalformedState = "malformedstate"
	KindPlayers        = "players"
	KindNoState        = "nostate"
	KindGameOver       = "gameover"
	KindSyntax         = "syntax"
)

type protocolError struct {
	kind string
	err  error
}

func (e *protocolError) Error() string {
	return e.err.Error()
}

func (e *protocolError) Unwrap() error {
	return e.err
}

func syntaxError(format string, args ...interface{}) error {
	return &protocolError{KindSyntax, fmt.Errorf(format, args...)}
}

// errorKind classifies an engine error for the wire.
func errorKind(err error) string {
	var pe *protocolError
	switch {
	case errors.As(err, &pe):
		return pe.kind
	case errors.Is(err, blau.ErrInvalidMove):
		return KindInvalidMove
	case errors.Is(err, blau.ErrStructuralBounds):
		return KindBounds
	case errors.Is(err, blau.ErrMalformedState):
		return KindMalformedState
	case errors.Is(err, blau.ErrPlayers):
		return KindPlayers
	}
	return KindSyntax
}

func (e *Engine) Run(ctx context.Context) error {
	for {
		line, err := e.in.ReadString('\n')
		if err == io.EOF && line == "" {
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		if words[0] == "quit" {
			return nil
		}
		reply, cerr := e.handle(ctx, words)
		if cerr != nil {
			log.Debug().Err(cerr).Str("command", words[0]).Msg("bei command failed")
			reply = fmt.Sprintf("error %s %s", errorKind(cerr), cerr.Error())
		}
		if _, werr := fmt.Fprintln(e.out, reply); werr != nil {
			return werr
		}
		if err == io.EOF {
			return nil
		}
	}
}

func (e *Engine) handle(ctx context.Context, words []string) (string, error) {
	switch words[0] {
	case "bei":
		return "id name blau\nbeiok", nil
	case "isready":
		return "readyok", nil
	case "newgame":
		return e.newGame(words[1:])
	case "position":
		s, err := parseInts(words[1:])
		if err != nil {
			return "", &protocolError{KindMalformedState, err}
		}
		st, err := blau.Deserialize(s)
		if err != nil {
			return "", err
		}
		e.setState(st)
		return "ok", nil
	case "moves":
		if !e.loaded {
			return "", &protocolError{KindNoState, errors.New("no position")}
		}
		return formatMoves(blau.LegalMoves(e.state)), nil
	case "apply":
		return e.apply(words[1:])
	case "outcome":
		if !e.loaded {
			return "", &protocolError{KindNoState, errors.New("no position")}
		}
		return "outcome " + e.state.Outcome().String(), nil
	case "go":
		return e.analyze(ctx, words[1:])
	}
	return "", syntaxError("unknown command: %q", words[0])
}

func (e *Engine) setState(s blau.State) {
	if !e.loaded || s.Players() != e.state.Players() {
		e.player = nil
	}
	e.state = s
	e.loaded = true
}

func (e *Engine) newGame(args []string) (string, error) {
	if len(args) != 2 {
		return "", syntaxError("usage: newgame <players> <seed>")
	}
	players, err := strconv.Atoi(args[0])
	if err != nil {
		return "", syntaxError("bad player count: %q", args[0])
	}
	seed, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return "", syntaxError("bad seed: %q", args[1])
	}
	s, err := blau.Initial(blau.Config{Players: players, Seed: seed})
	if err != nil {
		return "", err
	}
	e.player = nil
	e.setState(s)
	return "state " + formatInts(s.Serialize()), nil
}

func (e *Engine) apply(args []string) (string, error) {
	if !e.loaded {
		return "", &protocolError{KindNoState, errors.New("no position")}
	}
	m, err := parseMove(args)
	if err != nil {
		return "", err
	}
	next, err := blau.Apply(e.state, m)
	if err != nil {
		return "", err
	}
	e.state = next
	return "state " + formatInts(next.Serialize()), nil
}

func (e *Engine) analyze(ctx context.Context, args []string) (string, error) {
	if !e.loaded {
		return "", &protocolError{KindNoState, errors.New("no position")}
	}
	if e.state.GameOver() {
		return "", &protocolError{KindGameOver, errors.New("the game is over")}
	}
	if len(args) > 0 {
		if len(args) != 2 || args[0] != "movetime" {
			return "", syntaxError("expected movetime <ms>")
		}
		ms, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return "", syntaxError("bad ms: %v", args[1])
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
		defer cancel()
	}
	if e.player == nil {
		if e.PlayerFactory != nil {
			e.player = e.PlayerFactory(e.state.Players())
		} else {
			e.player = ai.NewGreedy(ai.DefaultWeights)
		}
	}
	m := e.player.GetMove(ctx, e.state)
	return "bestmove " + formatMove(m), nil
}

func parseInts(words []string) ([]int, error) {
	out := make([]int, len(words))
	for i, w := range words {
		v, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("element %d: %q is not an integer", i, w)
		}
		out[i] = v
	}
	return out, nil
}

func formatInts(ints []int) string {
	var b strings.Builder
	for i, v := range ints {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

func parseMove(words []string) (blau.Move, error) {
	if len(words) != 3 {
		return blau.Move{}, syntaxError("a move is three integers: source color line")
	}
	v, err := parseInts(words)
	if err != nil {
		return blau.Move{}, syntaxError("%v", err)
	}
	return blau.NewMove(v[0], v[1], v[2])
}

func formatMove(m blau.Move) string {
	s, c, l := m.Components()
	return fmt.Sprintf("%d %d %d", s, c, l)
}

func formatMoves(ms []blau.Move) string {
	var b strings.Builder
	b.WriteString("moves")
	for _, m := range ms {
		b.WriteByte(' ')
		b.WriteString(formatMove(m))
	}
	return b.String()
}
