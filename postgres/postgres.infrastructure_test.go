//go:build integration

package postgres_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/records/postgres"
	"github.com/go-arrower/records/tests"
)

var runOptions = &dockertest.RunOptions{ //nolint:exhaustruct // only set required configuration
	Repository: "postgres",
	Tag:        "16",
	Env: []string{
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_USER=records",
		"POSTGRES_DB=dbname_test",
		"listen_addresses = '*'",
	},
}

func testConfig(resource *dockertest.Resource) postgres.Config {
	port, _ := strconv.Atoi(resource.GetPort("5432/tcp"))

	return postgres.Config{ //nolint:exhaustruct
		Host:     "localhost",
		Port:     port,
		User:     "records",
		Password: "secret",
		Database: "dbname_test",
	}
}

func TestConnect(t *testing.T) {
	t.Parallel()

	var pgHandler *postgres.Handler

	cleanup, err := tests.StartDockerContainer(runOptions, func(resource *dockertest.Resource) func() error {
		conf := testConfig(resource)

		return func() error {
			handler, err := postgres.Connect(context.Background(), conf, noop.NewTracerProvider())
			if err != nil {
				return err //nolint:wrapcheck
			}

			pgHandler = handler

			return nil
		}
	})
	assert.NoError(t, err)

	err = pgHandler.PGx.Ping(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, pgHandler.DB)

	err = pgHandler.Shutdown(context.Background())
	assert.NoError(t, err)

	err = pgHandler.PGx.Ping(context.Background())
	assert.Error(t, err, "connection should be closed")

	_ = cleanup()
}

func TestConnectAndMigrate(t *testing.T) {
	t.Parallel()

	var config postgres.Config

	cleanup, err := tests.StartDockerContainer(runOptions, func(resource *dockertest.Resource) func() error {
		config = testConfig(resource)

		return func() error {
			handler, err := postgres.Connect(context.Background(), config, noop.NewTracerProvider())
			if err != nil {
				return err //nolint:wrapcheck
			}

			return handler.Shutdown(context.Background())
		}
	})
	assert.NoError(t, err)

	t.Run("missing migrations", func(t *testing.T) {
		handler, err := postgres.ConnectAndMigrate(context.Background(), config, noop.NewTracerProvider())
		assert.ErrorIs(t, err, postgres.ErrMigrationFailed)
		assert.Nil(t, handler)
	})

	t.Run("migrate", func(t *testing.T) {
		conf := config
		conf.Migrations = postgres.Migrations

		handler, err := postgres.ConnectAndMigrate(context.Background(), conf, noop.NewTracerProvider())
		assert.NoError(t, err)
		ensureSnapshotsTable(t, handler.PGx)

		_ = handler.Shutdown(context.Background())
	})

	t.Run("schema already up to date", func(t *testing.T) {
		conf := config
		conf.Migrations = postgres.Migrations

		handler, err := postgres.ConnectAndMigrate(context.Background(), conf, noop.NewTracerProvider())
		assert.NoError(t, err)

		_ = handler.Shutdown(context.Background())
	})

	_ = cleanup()
}

func ensureSnapshotsTable(t *testing.T, pgx *pgxpool.Pool) {
	t.Helper()

	row := pgx.QueryRow(
		context.Background(),
		`SELECT EXISTS (
				SELECT FROM information_schema.tables
					WHERE  table_schema = 'public'
					AND    table_name   = 'snapshots'
			);`)

	var exists bool

	err := row.Scan(&exists)
	assert.NoError(t, err)
	assert.True(t, exists)
}
