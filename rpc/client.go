package rpc

import (
	"context"

	"github.com/nelhage/blau/blau"
	"google.golang.org/grpc"
)

// Client is a typed client for the blau.Engine service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out interface{}, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...)
}

func (c *Client) NewGame(ctx context.Context, in *NewGameRequest, opts ...grpc.CallOption) (*StateResponse, error) {
	out := new(StateResponse)
	if err := c.invoke(ctx, "NewGame", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LegalMoves(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*LegalMovesResponse, error) {
	out := new(LegalMovesResponse)
	if err := c.invoke(ctx, "LegalMoves", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Apply(ctx context.Context, in *ApplyRequest, opts ...grpc.CallOption) (*StateResponse, error) {
	out := new(StateResponse)
	if err := c.invoke(ctx, "Apply", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Outcome(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*OutcomeResponse, error) {
	out := new(OutcomeResponse)
	if err := c.invoke(ctx, "Outcome", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetState(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*StateResponse, error) {
	out := new(StateResponse)
	if err := c.invoke(ctx, "GetState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) EndGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*EndGameResponse, error) {
	out := new(EndGameResponse)
	if err := c.invoke(ctx, "EndGame", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode returns the position carried by a StateResponse.
func (r *StateResponse) Decode() (blau.State, error) {
	return blau.Deserialize(r.State)
}
