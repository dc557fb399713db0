package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"

	"github.com/tair/starwars-api/pkg/logger"
)

// Server runs the HTTP API and the gRPC health endpoint side by side
type Server struct {
	httpServer *http.Server
	grpcAddr   string
	db         Pinger
}

// New creates a server listening on the given ports
func New(handler http.Handler, db Pinger, httpPort, grpcPort string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + httpPort,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		grpcAddr: ":" + grpcPort,
		db:       db,
	}
}

// Run serves until ctx is cancelled, then shuts both servers down
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.grpcAddr, err)
	}

	hs := health.NewServer()
	grpcServer := NewGRPCServer(hs)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Logger.Info().Str("addr", s.grpcAddr).Msg("gRPC health server starting")
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		WatchDatabase(gctx, s.db, hs, 10*time.Second)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Logger.Info().Msg("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		grpcServer.GracefulStop()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
