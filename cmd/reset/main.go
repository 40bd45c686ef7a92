package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/bootstrap"
	"github.com/osse101/HabitQuest_Go/internal/config"
)

// Runs one period reset sweep over every profile and exits, for installs
// that do not keep the server running.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if _, err := bootstrap.SetupLogger(cfg); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	if err := bootstrap.ValidateConfig(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Adapter: app.Adapter,
		Store:   app.Store,
	})

	n, err := app.ResetWorker.Trigger(ctx)
	if err != nil {
		log.Printf("Period reset failed: %v", err)
		return
	}
	fmt.Printf("Period reset complete: %d profile(s) had quests reopened.\n", n)
}
