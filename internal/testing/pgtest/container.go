// Package pgtest starts a throwaway Postgres for integration tests
package pgtest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const image = "postgres:15-alpine"

// Start runs a Postgres container and returns its connection string and a
// terminate func. When Docker is unavailable it returns an empty string
// so callers can skip.
func Start(ctx context.Context) (connStr string, terminate func()) {
	terminate = func() {}
	defer func() {
		// testcontainers panics when no Docker daemon can be reached
		if r := recover(); r != nil {
			fmt.Printf("pgtest: container start panicked: %v\n", r)
			connStr = ""
		}
	}()

	container, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("pgtest: failed to start postgres container: %v\n", err)
		return "", terminate
	}

	connStr, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("pgtest: failed to get connection string: %v\n", err)
		_ = container.Terminate(ctx)
		return "", terminate
	}

	return connStr, func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("pgtest: failed to terminate container: %v\n", err)
		}
	}
}
