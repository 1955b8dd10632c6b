package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "blau.Engine"

// EngineServer is the server API for the blau.Engine service.
type EngineServer interface {
	NewGame(context.Context, *NewGameRequest) (*StateResponse, error)
	LegalMoves(context.Context, *GameRequest) (*LegalMovesResponse, error)
	Apply(context.Context, *ApplyRequest) (*StateResponse, error)
	Outcome(context.Context, *GameRequest) (*OutcomeResponse, error)
	GetState(context.Context, *GameRequest) (*StateResponse, error)
	EndGame(context.Context, *GameRequest) (*EndGameResponse, error)
}

func RegisterEngineServer(s *grpc.Server, srv EngineServer) {
	s.RegisterService(&engineServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(EngineServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(EngineServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(EngineServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var engineServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("NewGame", EngineServer.NewGame),
		unaryHandler("LegalMoves", EngineServer.LegalMoves),
		unaryHandler("Apply", EngineServer.Apply),
		unaryHandler("Outcome", EngineServer.Outcome),
		unaryHandler("GetState", EngineServer.GetState),
		unaryHandler("EndGame", EngineServer.EndGame),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blau/engine",
}
