package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/HabitQuest_Go/internal/bootstrap"
	"github.com/osse101/HabitQuest_Go/internal/config"
)

func main() {
	createDB := flag.Bool("create-db", false, "create the postgres database first if it does not exist")
	flag.Parse()

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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *createDB && cfg.StoreDriver == config.StoreDriverPostgres {
		if err := ensureDatabase(ctx, cfg); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
	}

	// opening the store applies pending migrations
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	defer store.Close()

	fmt.Printf("Migrations applied for %s store.\n", cfg.StoreDriver)
}

// ensureDatabase connects to the maintenance database and creates DB_NAME
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort))
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return err
	}
	fmt.Println("Database created successfully.")
	return nil
}
