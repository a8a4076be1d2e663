package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/numdown/numdown-backend/internal/config"
	"github.com/numdown/numdown-backend/internal/server"
)

func main() {
	cfg := config.Load()
	srv := server.NewServer(cfg)

	log.Printf("[main] Listening on %s (round length %s)", srv.Addr, cfg.RoundDuration)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[main] Server error: %v", err)
	}
}
