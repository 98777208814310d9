package main

import (
	"context"
	"os"

	"github.com/mbarros/escolactl/internal/buildinfo"
	"github.com/mbarros/escolactl/internal/cli"
	"github.com/mbarros/escolactl/internal/config"
	"github.com/mbarros/escolactl/internal/logging"
)

func main() {
	buildinfo.Print(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.NewDefault(os.Stderr)

	app := cli.NewApp(cfg, log)
	app.Run(ctx)
}
