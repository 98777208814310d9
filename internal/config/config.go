package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the escolactl client.
type Config struct {
	// ServerBaseURL is the root URL of the school-records service.
	ServerBaseURL string
	// RequestTimeout bounds a single HTTP call.
	RequestTimeout time.Duration
	// TokenFile is where a remembered credential is persisted.
	TokenFile string
	// HealthCheckInterval is how often the client probes server reachability.
	HealthCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults. The token file lives
// under the user's home directory so it survives reboots.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.HealthCheckInterval = 30 * time.Second

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	c.TokenFile = filepath.Join(home, ".escolactl", "token.json")
}

// LoadConfig builds a Config by applying defaults, then overlaying the
// optional .env file, the optional JSON config file, and finally the
// command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
