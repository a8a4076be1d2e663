package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/numdown/numdown-backend/internal"
)

type Config struct {
	Port                 int
	RoundDuration        time.Duration
	EliminationThreshold int
}

// Load reads configuration from the environment, layering an optional .env
// file underneath. Missing values fall back to game defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, using process environment")
	}

	cfg := &Config{
		Port:                 8080,
		RoundDuration:        internal.RoundDuration,
		EliminationThreshold: internal.EliminationThreshold,
	}
	if port, ok := intEnv("PORT"); ok {
		cfg.Port = port
	}
	if secs, ok := intEnv("ROUND_SECONDS"); ok && secs > 0 {
		cfg.RoundDuration = time.Duration(secs) * time.Second
	}
	if threshold, ok := intEnv("ELIMINATION_THRESHOLD"); ok && threshold < 0 {
		cfg.EliminationThreshold = threshold
	}
	return cfg
}

func intEnv(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[config] Ignoring %s=%q: %v", key, raw, err)
		return 0, false
	}
	return v, true
}
