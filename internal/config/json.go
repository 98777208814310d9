package config

import (
	"encoding/json"
	"os"

	"github.com/mbarros/escolactl/internal/flagx"
	"github.com/mbarros/escolactl/internal/timex"
)

// jsonConfig is the DTO for the optional JSON config file. Durations accept
// both "15s" strings and integer nanoseconds (see timex.Duration).
type jsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	TokenFile           string         `json:"token_file"`
	HealthCheckInterval timex.Duration `json:"health_check_interval"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// Absent file path means no JSON layer. Read or parse failures panic:
// a config file that exists but cannot be used is a startup error.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.HealthCheckInterval.Duration > 0 {
		cfg.HealthCheckInterval = jc.HealthCheckInterval.Duration
	}
}
