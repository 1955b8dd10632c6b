package serve

import (
	"context"
	"flag"
	"fmt"
	"net"

	"github.com/google/subcommands"
	"github.com/nelhage/blau/rpc"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"
)

type Command struct {
	port     int
	maxConns int
	maxGames int
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve the Blau engine via GRPC" }
func (*Command) Usage() string {
	return `serve [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.port, "port", 55431, "bind port")
	flags.IntVar(&c.maxConns, "max-conns", 64, "maximum simultaneous connections (0 for no limit)")
	flags.IntVar(&c.maxGames, "max-games", 1024, "maximum open games (0 for no limit)")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		log.Error().Err(err).Msg("failed to listen")
		return subcommands.ExitFailure
	}
	if c.maxConns > 0 {
		lis = netutil.LimitListener(lis, c.maxConns)
	}
	log.Info().Msgf("Listening on port %d", c.port)

	srv := rpc.NewServer()
	srv.MaxGames = c.maxGames
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(rpc.LogUnary))
	rpc.RegisterEngineServer(grpcServer, srv)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()
	if err := grpcServer.Serve(lis); err != nil {
		log.Error().Err(err).Msg("serve")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
