package ai

import (
	"context"

	"github.com/nelhage/blau/blau"
)

// Player chooses a move in a position that is not over.
type Player interface {
	GetMove(ctx context.Context, s blau.State) blau.Move
}
