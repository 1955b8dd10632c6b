package bei

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/nelhage/blau/ai"
	"github.com/nelhage/blau/blau"
)

// Error is an "error" reply from an engine.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("engine error (%s): %s", e.Kind, e.Message)
}

// Client drives an engine speaking the bei protocol, typically a
// child process.
type Client struct {
	cmd *exec.Cmd

	stdinPipe  io.WriteCloser
	stdoutPipe io.ReadCloser

	mu    sync.Mutex
	read  *bufio.Reader
	write io.Writer
}

func NewClient(cmdline []string) (*Client, error) {
	if len(cmdline) == 0 {
		return nil, fmt.Errorf("empty engine command line")
	}
	cmd := &exec.Cmd{
		Args: cmdline,
	}
	if path, err := exec.LookPath(cmdline[0]); err != nil {
		return nil, err
	} else {
		cmd.Path = path
	}

	cl := &Client{
		cmd: cmd,
	}

	if stdin, err := cmd.StdinPipe(); err != nil {
		cl.Close()
		return nil, err
	} else {
		cl.stdinPipe = stdin
		cl.write = stdin
	}

	if stdout, err := cmd.StdoutPipe(); err != nil {
		cl.Close()
		return nil, err
	} else {
		cl.stdoutPipe = stdout
		cl.read = bufio.NewReader(stdout)
	}

	if err := cl.cmd.Start(); err != nil {
		cl.Close()
		return nil, err
	}
	if err := cl.handshake(); err != nil {
		cl.Close()
		return nil, err
	}
	return cl, nil
}

// Connect speaks the protocol over an existing pair of streams.
func Connect(r io.Reader, w io.Writer) (*Client, error) {
	cl := &Client{
		read:  bufio.NewReader(r),
		write: w,
	}
	if err := cl.handshake(); err != nil {
		return nil, err
	}
	return cl, nil
}

func (c *Client) handshake() error {
	_, err := c.sendCommand("bei", "beiok")
	return err
}

func (c *Client) Close() {
	if c.write != nil {
		fmt.Fprintln(c.write, "quit")
	}
	if c.stdinPipe != nil {
		c.stdinPipe.Close()
	}
	if c.stdoutPipe != nil {
		c.stdoutPipe.Close()
	}
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Wait()
	}
}

// sendCommand writes cmd and reads lines until one starting with
// expect, or an error reply.
func (c *Client) sendCommand(cmd string, expect string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintln(c.write, cmd); err != nil {
		return nil, err
	}
	for {
		line, err := c.read.ReadString('\n')
		if err != nil {
			return nil, err
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case expect:
			return words, nil
		case "error":
			e := &Error{}
			if len(words) > 1 {
				e.Kind = words[1]
			}
			if len(words) > 2 {
				e.Message = strings.Join(words[2:], " ")
			}
			return nil, e
		}
	}
}

func (c *Client) readState(words []string) (blau.State, error) {
	ints, err := parseInts(words[1:])
	if err != nil {
		return blau.State{}, err
	}
	return blau.Deserialize(ints)
}

func (c *Client) NewGame(cfg blau.Config) (blau.State, error) {
	if cfg.Players == 0 {
		cfg.Players = 2
	}
	words, err := c.sendCommand(fmt.Sprintf("newgame %d %d", cfg.Players, cfg.Seed), "state")
	if err != nil {
		return blau.State{}, err
	}
	return c.readState(words)
}

func (c *Client) SetPosition(s blau.State) error {
	_, err := c.sendCommand("position "+formatInts(s.Serialize()), "ok")
	return err
}

func (c *Client) LegalMoves() ([]blau.Move, error) {
	words, err := c.sendCommand("moves", "moves")
	if err != nil {
		return nil, err
	}
	words = words[1:]
	if len(words)%3 != 0 {
		return nil, fmt.Errorf("moves reply has %d integers", len(words))
	}
	var out []blau.Move
	for i := 0; i < len(words); i += 3 {
		m, err := parseMove(words[i : i+3])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (c *Client) Apply(m blau.Move) (blau.State, error) {
	words, err := c.sendCommand("apply "+formatMove(m), "state")
	if err != nil {
		return blau.State{}, err
	}
	return c.readState(words)
}

func (c *Client) Outcome() (blau.Outcome, error) {
	words, err := c.sendCommand("outcome", "outcome")
	if err != nil {
		return blau.Outcome{}, err
	}
	switch {
	case len(words) == 2 && words[1] == "undecided":
		return blau.Outcome{Kind: blau.Undecided}, nil
	case len(words) == 2 && words[1] == "draw":
		return blau.Outcome{Kind: blau.Draw}, nil
	case len(words) == 3 && words[1] == "win":
		var w int
		if _, err := fmt.Sscan(words[2], &w); err != nil {
			return blau.Outcome{}, fmt.Errorf("bad winner %q", words[2])
		}
		return blau.Outcome{Kind: blau.Win, Winner: w}, nil
	}
	return blau.Outcome{}, fmt.Errorf("bad outcome reply %q", strings.Join(words, " "))
}

// BestMove asks the engine for its move in s, honoring ctx's deadline
// as a move time.
func (c *Client) BestMove(ctx context.Context, s blau.State) (blau.Move, error) {
	if err := c.SetPosition(s); err != nil {
		return blau.Move{}, err
	}
	goCmd := "go"
	if deadline, ok := ctx.Deadline(); ok {
		// The engine always answers, so an expired deadline still
		// asks for the shortest search.
		timeoutMS := time.Until(deadline) / time.Millisecond
		if timeoutMS < 1 {
			timeoutMS = 1
		}
		goCmd = fmt.Sprintf("%s movetime %d", goCmd, timeoutMS)
	}
	words, err := c.sendCommand(goCmd, "bestmove")
	if err != nil {
		return blau.Move{}, err
	}
	return parseMove(words[1:])
}

// Player adapts the engine to ai.Player.
func (c *Client) Player() ai.Player {
	return &player{client: c}
}

type player struct {
	client *Client
}

func (p *player) GetMove(ctx context.Context, s blau.State) blau.Move {
	m, err := p.client.BestMove(ctx, s)
	if err != nil {
		panic(fmt.Sprintf("engine move: %v", err))
	}
	return m
}
