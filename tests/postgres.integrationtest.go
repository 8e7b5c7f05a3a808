//go:build integration

package tests

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-testfixtures/testfixtures/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khaiql/dbcleaner"
	"github.com/khaiql/dbcleaner/engine"
	"github.com/ory/dockertest/v3"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/records/postgres"
)

//nolint:gochecknoglobals // the variables are used on purpose for a singleton pattern.
var (
	muPostgres        = &sync.Mutex{}
	singletonPostgres *PostgresDocker
)

//nolint:gochecknoglobals,exhaustruct // only set required configuration
var (
	defaultPGConf = postgres.Config{
		User:       "records",
		Password:   "secret",
		Database:   "records_test",
		Host:       "localhost",
		Port:       5432, //nolint:mnd
		MaxConns:   10,   //nolint:mnd
		Migrations: postgres.Migrations,
	}

	defaultPGRunOptions = &dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=" + defaultPGConf.User,
			"POSTGRES_PASSWORD=" + defaultPGConf.Password,
			"POSTGRES_DB=" + defaultPGConf.Database,
			"listen_addresses = '*'",
		},
		Cmd: []string{"-c", "max_connections=1000"},
	}
)

// PostgresDocker is a migrated postgres database running in docker.
type PostgresDocker struct {
	pg            *postgres.Handler
	cleanupDocker func() error
}

// GetPostgresDockerForIntegrationTestingInstance returns a fully connected and migrated database.
// Subsequent calls return the same instance to prevent multiple docker containers to spin up,
// if you have a lot of integration tests running in parallel.
// In case of an issue, it panics.
func GetPostgresDockerForIntegrationTestingInstance() *PostgresDocker {
	muPostgres.Lock()
	defer muPostgres.Unlock()

	if singletonPostgres != nil {
		return singletonPostgres
	}

	var pgHandler *postgres.Handler

	options := *defaultPGRunOptions
	options.Name = fmt.Sprintf("records-testing-postgres-%d", rand.Intn(1000)) //nolint:gosec,mnd,lll // no need for secure number, just prevent collisions

	cleanup, err := StartDockerContainer(&options, func(resource *dockertest.Resource) func() error {
		conf := defaultPGConf
		conf.Port, _ = strconv.Atoi(resource.GetPort("5432/tcp"))

		return func() error {
			handler, err := postgres.ConnectAndMigrate(context.Background(), conf, noop.NewTracerProvider())
			if err != nil {
				return err //nolint:wrapcheck
			}

			pgHandler = handler

			return nil
		}
	})
	if err != nil {
		panic(err)
	}

	singletonPostgres = &PostgresDocker{
		pg:            pgHandler,
		cleanupDocker: cleanup,
	}

	return singletonPostgres
}

// NewTestDatabase creates a new database, connects to it, and applies all migrations.
// Afterwards, it loads all fixture files.
// Use it in parallel integration tests, each test gets its own isolated database.
// In case of an issue, it panics.
func (pd *PostgresDocker) NewTestDatabase(files ...string) *pgxpool.Pool {
	newDB := randomDatabaseName()

	_, err := pd.pg.PGx.Exec(context.Background(), fmt.Sprintf("CREATE DATABASE %s;", newDB))
	if err != nil {
		panic(err)
	}

	conf := pd.pg.Config
	conf.Database = newDB

	handler, err := postgres.ConnectAndMigrate(context.Background(), conf, noop.NewTracerProvider())
	if err != nil {
		panic(err)
	}

	loadFixtures(handler, files...)

	return handler.PGx
}

// PrepareDatabase truncates all tables of the shared database and loads the fixture files.
// In case of an issue, it panics.
func (pd *PostgresDocker) PrepareDatabase(files ...string) {
	c := pd.pg.Config
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		c.User, c.Password, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Database)

	cleaner := dbcleaner.New()
	cleaner.SetEngine(engine.NewPostgresEngine(dsn))

	var tables []string

	_ = pgxscan.Select(context.Background(), pd.PGx(), &tables,
		`SELECT table_schema || '.' || table_name
				FROM information_schema.tables
				WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
				  AND table_type = 'BASE TABLE'
				  AND table_name <> 'schema_migrations'`,
	)

	cleaner.Clean(tables...)
	_ = cleaner.Close()

	loadFixtures(pd.pg, files...)
}

func loadFixtures(handler *postgres.Handler, files ...string) {
	if len(files) == 0 {
		return
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			panic("fixture file does not exist: " + f)
		}
	}

	fixtures, err := testfixtures.New(
		testfixtures.Database(handler.DB),
		testfixtures.Dialect("postgres"),
		testfixtures.FilesMultiTables(files...),
	)
	if err != nil {
		panic(err)
	}

	if err := fixtures.Load(); err != nil {
		panic(err)
	}
}

// Cleanup does shutdown the database connection, stops, and removes the docker container.
// It cannot be deferred in TestMain, if it exits with os.Exit(code), as that does not execute the defer stack.
// In case of an issue, it panics.
func (pd *PostgresDocker) Cleanup() {
	err := pd.pg.Shutdown(context.Background())
	if err != nil {
		panic(err)
	}

	err = pd.cleanupDocker()
	if err != nil {
		panic(err)
	}
}

// PGx returns the pgx connection if you need to access the database directly.
func (pd *PostgresDocker) PGx() *pgxpool.Pool {
	return pd.pg.PGx
}

func randomDatabaseName() string {
	validPGDatabaseLetters := []rune("abcdefghijklmnopqrstuvwxyz")

	rnd := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // used for name, not security

	const n = 16
	b := make([]rune, n)

	for i := range b {
		b[i] = validPGDatabaseLetters[rnd.Intn(len(validPGDatabaseLetters))]
	}

	return string(b) + "_test"
}
