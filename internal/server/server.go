package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/numdown/numdown-backend/internal/config"
	"github.com/numdown/numdown-backend/internal/game"
)

type Server struct {
	port     int
	registry *game.Registry
}

// NewServer wires a game registry into an http.Server. The registry's
// lifecycle is scoped to the returned server; independent servers never share
// room state.
func NewServer(cfg *config.Config) *http.Server {
	s := &Server{
		port:     cfg.Port,
		registry: game.NewRegistry(cfg.RoundDuration, cfg.EliminationThreshold),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
