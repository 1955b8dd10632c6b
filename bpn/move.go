package bpn

import (
	"errors"
	"regexp"

	"github.com/nelhage/blau/blau"
)

// source color line, e.g. 3B2 or cRf
var moveRE = regexp.MustCompile(`^([cC1-9])([BOGRPbogrp])([1-5fF])$`)

func ParseMove(move string) (blau.Move, error) {
	groups := moveRE.FindStringSubmatch(move)
	if groups == nil {
		return blau.Move{}, errors.New("illegal move")
	}
	src := 0
	if s := groups[1][0]; s != 'c' && s != 'C' {
		src = int(s - '0')
	}
	c, _ := blau.ColorFromLetter(groups[2][0])
	line := blau.FloorLine
	if l := groups[3][0]; l != 'f' && l != 'F' {
		line = int(l - '1')
	}
	return blau.NewMove(src, int(c), line)
}

func FormatMove(m blau.Move) string {
	return m.String()
}
