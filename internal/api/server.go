package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/types"
)

// Planner builds one plan per brief. usecase.Usecase satisfies it.
type Planner interface {
	Build(ctx context.Context, raw types.RawRequest) (types.VideoPlan, error)
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

type ServerConfig struct {
	Host      string
	Port      int
	Planner   Planner
	Policy    config.Policy
	Logger    *slog.Logger
	StartTime time.Time
}

func NewServer(cfg ServerConfig) *Server {
	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, cfg.Port),
			Handler:           NewRouter(cfg),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			// Plans may wait on the script writer for the full generation timeout.
			WriteTimeout: cfg.Policy.GenerationTimeout + 15*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}
