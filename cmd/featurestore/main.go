package main

import (
	"context"
	"log"
	"os"

	"github.com/srs-sudeep/vyuwer/internal/app"
	"github.com/srs-sudeep/vyuwer/internal/config"
	"github.com/srs-sudeep/vyuwer/internal/logger"
)

func main() {
	cfg := config.Load()

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	application := app.NewApp(cfg, appLogger, os.Stdout)
	if err := app.NewRootCommand(application).ExecuteContext(context.Background()); err != nil {
		appLogger.Error("featurestore failed: %v", err)
		appLogger.Close()
		os.Exit(1)
	}
	appLogger.Close()
}
