package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config carries the environment-driven settings for the console process.
type Config struct {
	ListenAddr string
	APIBaseURL string
	MLBaseURL  string
	// APITimeout bounds calls to the store backend; MLTimeout is longer
	// because training and prediction are heavy on the remote side.
	APITimeout time.Duration
	MLTimeout  time.Duration
	// TokenFile is where the bearer token is persisted between runs.
	TokenFile string
}

func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr: getenv("LISTEN_ADDR", ":9091"),
		APIBaseURL: getenv("API_BASE_URL", "https://dropnshop-backend.onrender.com"),
		MLBaseURL:  getenv("ML_BASE_URL", "https://ml-flask-fri4.onrender.com"),
		APITimeout: 15 * time.Second,
		MLTimeout:  120 * time.Second,
		TokenFile:  os.Getenv("TOKEN_FILE"),
	}
	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.TokenFile = filepath.Join(home, ".shopadmin", "token")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
