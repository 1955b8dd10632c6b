package rpc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nelhage/blau/blau"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server holds the games of interactive clients. Positions are
// immutable values, so the lock only guards the session table.
type Server struct {
	// MaxGames caps the number of open games; zero means no cap.
	MaxGames int

	mu    sync.Mutex
	next  int64
	games map[int64]blau.State
}

var _ EngineServer = &Server{}

func NewServer() *Server {
	return &Server{games: make(map[int64]blau.State)}
}

// statusError maps engine errors onto gRPC status codes.
func statusError(err error) error {
	switch {
	case errors.Is(err, blau.ErrInvalidMove),
		errors.Is(err, blau.ErrStructuralBounds),
		errors.Is(err, blau.ErrMalformedState),
		errors.Is(err, blau.ErrPlayers):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func (s *Server) lookup(id int64) (blau.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.games[id]
	if !ok {
		return blau.State{}, status.Errorf(codes.NotFound, "no game %d", id)
	}
	return st, nil
}

func (s *Server) stateResponse(id int64, st blau.State) *StateResponse {
	return &StateResponse{
		GameID: id,
		State:  blau.Serialize(st),
		View:   NewView(st),
	}
}

func (s *Server) NewGame(ctx context.Context, req *NewGameRequest) (*StateResponse, error) {
	st, err := blau.Initial(blau.Config{Players: req.Players, Seed: req.Seed})
	if err != nil {
		return nil, statusError(err)
	}
	s.mu.Lock()
	if s.MaxGames > 0 && len(s.games) >= s.MaxGames {
		s.mu.Unlock()
		return nil, status.Errorf(codes.ResourceExhausted, "%d games open", len(s.games))
	}
	if s.games == nil {
		s.games = make(map[int64]blau.State)
	}
	s.next++
	id := s.next
	s.games[id] = st
	s.mu.Unlock()

	log.Debug().Int64("game", id).Int("players", st.Players()).Uint64("seed", req.Seed).Msg("new game")
	return s.stateResponse(id, st), nil
}

func (s *Server) LegalMoves(ctx context.Context, req *GameRequest) (*LegalMovesResponse, error) {
	st, err := s.lookup(req.GameID)
	if err != nil {
		return nil, err
	}
	resp := &LegalMovesResponse{Moves: []Move{}}
	for _, m := range blau.LegalMoves(st) {
		resp.Moves = append(resp.Moves, FromMove(m))
	}
	return resp, nil
}

func (s *Server) Apply(ctx context.Context, req *ApplyRequest) (*StateResponse, error) {
	m, err := req.Move.ToMove()
	if err != nil {
		return nil, statusError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.games[req.GameID]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "no game %d", req.GameID)
	}
	next, err := blau.Apply(st, m)
	if err != nil {
		return nil, statusError(err)
	}
	s.games[req.GameID] = next
	return s.stateResponse(req.GameID, next), nil
}

func (s *Server) Outcome(ctx context.Context, req *GameRequest) (*OutcomeResponse, error) {
	st, err := s.lookup(req.GameID)
	if err != nil {
		return nil, err
	}
	o := blau.Evaluate(st)
	return &OutcomeResponse{
		Outcome: o.Kind.String(),
		Winner:  o.Winner,
		Scores:  st.Scores(),
	}, nil
}

func (s *Server) GetState(ctx context.Context, req *GameRequest) (*StateResponse, error) {
	st, err := s.lookup(req.GameID)
	if err != nil {
		return nil, err
	}
	return s.stateResponse(req.GameID, st), nil
}

func (s *Server) EndGame(ctx context.Context, req *GameRequest) (*EndGameResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[req.GameID]; !ok {
		return nil, status.Errorf(codes.NotFound, "no game %d", req.GameID)
	}
	delete(s.games, req.GameID)
	return &EndGameResponse{}, nil
}

// LogUnary logs every unary call at debug level, and failures at
// warn.
func LogUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	ev := log.Debug()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("method", info.FullMethod).Dur("elapsed", time.Since(start)).Msg("rpc")
	return resp, err
}
