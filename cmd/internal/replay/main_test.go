package replay

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nelhage/blau/blau"
	"github.com/nelhage/blau/blautest"
	"github.com/nelhage/blau/bpn"
	"github.com/nelhage/blau/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, plies int) (*bpn.BPN, []blau.Move) {
	cfg := blau.Config{Players: 2, Seed: 5}
	s, err := blau.New(cfg)
	require.NoError(t, err)
	_, ms := blautest.Playout(s, plies)
	p, err := bpn.NewRecord(cfg, ms)
	require.NoError(t, err)
	return p, ms
}

func TestReplay(t *testing.T) {
	p, _ := record(t, 3)
	assert.NoError(t, replay(p, nil, nil))

	var buf bytes.Buffer
	require.NoError(t, replay(p, &cli.DefaultGlyphs, &buf))
	assert.Contains(t, buf.String(), "[round 1, player 1 to play]")
	assert.Contains(t, buf.String(), "3. ")
}

func TestReplayWrongResult(t *testing.T) {
	p, _ := record(t, 3)
	for _, op := range p.Ops {
		if r, ok := op.(*bpn.Result); ok {
			r.Outcome = blau.Outcome{Kind: blau.Win, Winner: 1}
		}
	}
	err := replay(p, nil, nil)
	assert.True(t, errors.Is(err, errResult), "err=%v", err)
}

func TestReplayIllegalMove(t *testing.T) {
	p, ms := record(t, 3)
	// Factory 1 is empty once its tiles have been drafted.
	last := len(p.Ops) - 1
	ops := append([]bpn.Op{}, p.Ops[:last]...)
	ops = append(ops, &bpn.Move{Move: ms[0]}, p.Ops[last])
	p.Ops = ops

	err := replay(p, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, blau.ErrInvalidMove), "err=%v", err)
	assert.Contains(t, err.Error(), "ply 4")
}
