package bpn

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/nelhage/blau/blau"
)

type Tag struct {
	Name  string
	Value string
}

type Op interface {
	op()

	Source() string
}

type opCommon struct {
	src string
}

func (o opCommon) Source() string {
	return o.src
}

func (o opCommon) op() {}

// RoundNumber marks the start of a round.
type RoundNumber struct {
	opCommon
	Number int
}

type Move struct {
	opCommon
	Move blau.Move
}

type Comment struct {
	opCommon
	Comment string
}

// Result records how the game ended. An Undecided outcome is written
// as "*" and marks a game that was cut off.
type Result struct {
	opCommon
	Outcome blau.Outcome
}

type BPN struct {
	Tags []Tag
	Ops  []Op
}

func ParseBPN(r io.Reader) (*BPN, error) {
	buf := bufio.NewReader(r)
	var bpn BPN
	if err := readTags(buf, &bpn); err != nil && err != io.EOF {
		return nil, err
	}
	if err := readOps(buf, &bpn); err != nil && err != io.EOF {
		return nil, err
	}
	return &bpn, nil
}

func ParseFile(path string) (*BPN, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseBPN(f)
}

func (p *BPN) FindTag(name string) string {
	for _, t := range p.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

// Config returns the game configuration recorded in the Players and
// Seed tags.
func (p *BPN) Config() (blau.Config, error) {
	var cfg blau.Config
	if tag := p.FindTag("Players"); tag != "" {
		n, err := strconv.Atoi(tag)
		if err != nil {
			return cfg, fmt.Errorf("bad Players tag: %q", tag)
		}
		cfg.Players = n
	}
	if tag := p.FindTag("Seed"); tag != "" {
		seed, err := strconv.ParseUint(tag, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("bad Seed tag: %q", tag)
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

// InitialState returns the position the record starts from: the State
// tag if present, else the initial position for the recorded Config.
func (p *BPN) InitialState() (blau.State, error) {
	cfg, err := p.Config()
	if err != nil {
		return blau.State{}, err
	}
	if tag := p.FindTag("State"); tag != "" {
		s, err := ParseState(tag)
		if err != nil {
			return blau.State{}, fmt.Errorf("bad State tag: %w", err)
		}
		if cfg.Players != 0 && cfg.Players != s.Players() {
			return blau.State{}, fmt.Errorf("player mismatch: tag %d != State %d",
				cfg.Players, s.Players())
		}
		return s, nil
	}
	return blau.New(cfg)
}

// Moves returns the moves of the record in order.
func (p *BPN) Moves() []blau.Move {
	var out []blau.Move
	for _, op := range p.Ops {
		if m, ok := op.(*Move); ok {
			out = append(out, m.Move)
		}
	}
	return out
}

// Result returns the recorded outcome, if any.
func (p *BPN) Result() (blau.Outcome, bool) {
	for _, op := range p.Ops {
		if r, ok := op.(*Result); ok {
			return r.Outcome, true
		}
	}
	return blau.Outcome{}, false
}

func readTags(r *bufio.Reader, bpn *BPN) error {
	for {
		if e := skipWS(r); e != nil {
			return e
		}
		c, e := r.ReadByte()
		if e != nil {
			return e
		}
		if c != '[' {
			return r.UnreadByte()
		}
		line, e := r.ReadString(']')
		if e != nil {
			return e
		}
		line = line[:len(line)-1]
		bits := strings.SplitN(line, " ", 2)
		if len(bits) != 2 {
			return errors.New("bad tag")
		}
		bpn.Tags = append(bpn.Tags, Tag{
			Name:  bits[0],
			Value: strings.Trim(bits[1], "\""),
		})
	}
}

var errUnterminatedComment = errors.New("unterminated comment")

func readOps(r *bufio.Reader, bpn *BPN) error {
	s := bufio.NewScanner(r)
	s.Split(splitOps)
	for s.Scan() {
		tok := s.Text()
		common := opCommon{tok}
		switch {
		case tok[0] == '{':
			bpn.Ops = append(bpn.Ops, &Comment{common, tok[1 : len(tok)-1]})
		case tok[len(tok)-1] == '.':
			n, e := strconv.Atoi(tok[:len(tok)-1])
			if e != nil {
				return e
			}
			bpn.Ops = append(bpn.Ops, &RoundNumber{common, n})
		case tok == "*":
			bpn.Ops = append(bpn.Ops, &Result{common, blau.Outcome{Kind: blau.Undecided}})
		case tok == "D":
			bpn.Ops = append(bpn.Ops, &Result{common, blau.Outcome{Kind: blau.Draw}})
		case len(tok) == 2 && tok[0] == 'W' && tok[1] >= '1' && tok[1] < '1'+blau.MaxPlayers:
			bpn.Ops = append(bpn.Ops, &Result{common,
				blau.Outcome{Kind: blau.Win, Winner: int(tok[1] - '1')}})
		default:
			move, e := ParseMove(tok)
			if e != nil {
				return fmt.Errorf("%q: %w", tok, e)
			}
			bpn.Ops = append(bpn.Ops, &Move{common, move})
		}
	}
	return s.Err()
}

func splitOps(buf []byte, atEOF bool) (int, []byte, error) {
	start := 0
	for start < len(buf) && unicode.IsSpace(rune(buf[start])) {
		start++
	}
	if start == len(buf) {
		return start, nil, nil
	}
	if buf[start] == '{' {
		for i := start; i < len(buf); i++ {
			if buf[i] == '}' {
				return i + 1, buf[start : i+1], nil
			}
		}
	} else {
		for i := start; i < len(buf); i++ {
			if unicode.IsSpace(rune(buf[i])) {
				return i + 1, buf[start:i], nil
			}
		}
	}
	if atEOF {
		if buf[start] == '{' {
			return 0, nil, errUnterminatedComment
		}
		return len(buf), buf[start:], nil
	}
	return start, nil, nil
}

func skipWS(r *bufio.Reader) error {
	for {
		c, e := r.ReadByte()
		if e != nil {
			return e
		}
		if !unicode.IsSpace(rune(c)) {
			return r.UnreadByte()
		}
	}
}

func FormatResult(o blau.Outcome) string {
	switch o.Kind {
	case blau.Win:
		return fmt.Sprintf("W%d", o.Winner+1)
	case blau.Draw:
		return "D"
	}
	return "*"
}

func (p *BPN) Render() string {
	var out bytes.Buffer
	for _, tag := range p.Tags {
		fmt.Fprintf(&out, "[%s \"%s\"]\n",
			tag.Name, strings.Replace(tag.Value, "\"", "", -1),
		)
	}
	out.WriteString("\n")

	for _, op := range p.Ops {
		switch o := op.(type) {
		case *RoundNumber:
			fmt.Fprintf(&out, "\n%d.", o.Number)
		case *Move:
			fmt.Fprintf(&out, " %s", FormatMove(o.Move))
		case *Comment:
			fmt.Fprintf(&out, " {%s}", o.Comment)
		case *Result:
			fmt.Fprintf(&out, "\n%s\n", FormatResult(o.Outcome))
		default:
		}
	}
	return out.String()
}
