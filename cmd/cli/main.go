package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"qrstudio/internal/buildinfo"
	"qrstudio/internal/client/cli"
	"qrstudio/internal/client/config"
	"qrstudio/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer zl.Sync()

	app, err := cli.NewApp(cfg, logging.NewZapLogger(zl))
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
