package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBase is the scoring service root, e.g. http://localhost:8000/api/tasks.
	APIBase string
	// Strategy is the default analyze strategy identifier. Passed through
	// opaque; the service validates it.
	Strategy string
	// ServeAddr is the listen address for the bundled reference service.
	ServeAddr string
}

func Load() *Config {
	// Optional .env next to the binary; absence is fine.
	_ = godotenv.Load()

	return &Config{
		APIBase:   getenv("TASKPILOT_API_BASE", "http://localhost:8000/api/tasks"),
		Strategy:  getenv("TASKPILOT_STRATEGY", "smart_balance"),
		ServeAddr: getenv("TASKPILOT_SERVE_ADDR", ":8000"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
