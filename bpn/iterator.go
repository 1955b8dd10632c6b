package bpn

import "github.com/nelhage/blau/blau"

// Iterator steps through the positions of a record. After each
// successful call to Next, State is the position in which Move is
// played. Once Next returns false with a nil Err, State is the final
// position.
type Iterator struct {
	bpn *BPN
	i   int

	err     error
	pending bool

	state blau.State
	move  blau.Move
}

func (p *BPN) Iterator() *Iterator {
	s, err := p.InitialState()
	return &Iterator{
		bpn:   p,
		state: s,
		err:   err,
	}
}

func (i *Iterator) Err() error {
	return i.err
}

func (i *Iterator) apply() bool {
	next, e := i.state.Move(i.move)
	if e != nil {
		i.err = e
		return false
	}
	i.state = next
	i.pending = false
	return true
}

func (i *Iterator) Next() bool {
	if i.err != nil {
		return false
	}
	if i.pending && !i.apply() {
		return false
	}
	for i.i < len(i.bpn.Ops) {
		op := i.bpn.Ops[i.i]
		i.i++
		if m, ok := op.(*Move); ok {
			i.move = m.Move
			i.pending = true
			return true
		}
	}
	return false
}

func (i *Iterator) State() blau.State {
	return i.state
}

func (i *Iterator) Move() blau.Move {
	return i.move
}
