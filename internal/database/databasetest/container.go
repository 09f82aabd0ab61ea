// Package databasetest starts a throwaway PostgreSQL for integration tests.
package databasetest

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taiwoajasa245/march16-verse-api/internal/database"
)

// MustStartPostgresContainer runs postgres, applies migrations and returns
// a connected service plus a teardown func.
func MustStartPostgresContainer() (database.Service, func(context.Context) error, error) {
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	ctx := context.Background()
	dbContainer, err := postgres.Run(
		ctx,
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	teardown := func(ctx context.Context) error {
		return dbContainer.Terminate(ctx)
	}

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		return nil, teardown, err
	}

	dbPort, err := dbContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, teardown, err
	}

	srv, err := database.New(database.Config{
		Host:     dbHost,
		Port:     dbPort.Port(),
		Database: dbName,
		Username: dbUser,
		Password: dbPwd,
		Schema:   "public",
	}, nil)
	if err != nil {
		return nil, teardown, err
	}

	if err := database.Migrate(srv); err != nil {
		srv.Close()
		return nil, teardown, err
	}

	return srv, func(ctx context.Context) error {
		srv.Close()
		return dbContainer.Terminate(ctx)
	}, nil
}
