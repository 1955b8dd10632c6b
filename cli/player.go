package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nelhage/blau/ai"
	"github.com/nelhage/blau/blau"
	"github.com/nelhage/blau/bpn"
)

func NewCLIPlayer(out io.Writer, in *bufio.Reader) ai.Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) GetMove(ctx context.Context, s blau.State) blau.Move {
	for {
		fmt.Fprintf(c.out, "player %d> ", s.ToMove()+1)
		line, err := c.in.ReadString('\n')
		if err != nil {
			panic(err)
		}
		m, err := bpn.ParseMove(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(c.out, "parse error: ", err)
			continue
		}
		return m
	}
}
