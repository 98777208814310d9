package config

import (
	"flag"
	"os"
	"time"

	"github.com/mbarros/escolactl/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   base URL of the school-records service
//	-t int      request timeout in seconds
//	-i int      health check interval in seconds
//	-f string   path of the remembered-credential file
//
// Only the flags above are consumed; the argument list is filtered first so
// flags owned by other packages (like -c/-config) pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the school-records service")
	fs.StringVar(&cfg.TokenFile, "f", cfg.TokenFile, "remembered-credential file path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (seconds)")
	interval := fs.Int("i", int(cfg.HealthCheckInterval.Seconds()), "health check interval (seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.HealthCheckInterval = time.Duration(*interval) * time.Second
}
