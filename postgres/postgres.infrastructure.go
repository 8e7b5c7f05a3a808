package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel/trace"
)

// Migrations create the schema used by arepo.PostgresStore.
//
//go:embed migrations/*.sql
var Migrations embed.FS

var (
	ErrConnectionFailed = errors.New("connection failed")
	ErrMigrationFailed  = errors.New("migration failed")
)

// Config holds all values used to configure and connect to a postgres database.
type Config struct {
	Migrations fs.FS
	User       string
	Password   string
	Database   string
	SSLMode    string
	Host       string
	Port       int
	MaxConns   int

	// ConnectTimeout is the total time spent retrying to reach the database. Zero tries once.
	ConnectTimeout time.Duration
}

func (c Config) toURL() string {
	if c.MaxConns == 0 { // prevent error: pool_max_conns too small
		c.MaxConns = 10
	}

	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&pool_max_conns=%d",
		c.User, c.Password, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Database, c.SSLMode, c.MaxConns)
}

// Connect connects to a PostgreSQL database.
// If the database is not reachable yet, it retries with an exponential backoff until ConnectTimeout.
func Connect(ctx context.Context, pgConf Config, tracerProvider trace.TracerProvider) (*Handler, error) {
	config, err := pgxpool.ParseConfig(pgConf.toURL())
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse config: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	// to list all runtime settings: SHOW ALL;
	config.ConnConfig.RuntimeParams = map[string]string{
		"application_name": "records",
	}
	config.ConnConfig.Tracer = &pgxTraceAdapter{
		tracer: tracerProvider.Tracer("records.pgx"),
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: could not connect: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	err = ping(ctx, dbpool, pgConf.ConnectTimeout)
	if err != nil {
		dbpool.Close()

		return nil, fmt.Errorf("%w: could not ping db: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	connStr := stdlib.RegisterConnConfig(config.ConnConfig) // migrate and test fixtures need a std sql.DB

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		dbpool.Close()

		return nil, fmt.Errorf("%w: could not connect via the std lib registration: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return &Handler{
		PGx:    dbpool,
		DB:     db,
		Config: pgConf,
	}, nil
}

func ping(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	if timeout <= 0 {
		return pool.Ping(ctx) //nolint:wrapcheck // wrapped by caller
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = timeout

	return backoff.Retry(func() error { //nolint:wrapcheck // wrapped by caller
		return pool.Ping(ctx)
	}, backoff.WithContext(b, ctx))
}

// ConnectAndMigrate connects to a PostgreSQL database and
// runs all migrations to ensure that the schema is on the latest version.
func ConnectAndMigrate(ctx context.Context, conf Config, tracerProvider trace.TracerProvider) (*Handler, error) {
	if conf.Migrations == nil {
		return nil, fmt.Errorf("%w: no migration files given", ErrMigrationFailed)
	}

	handler, err := Connect(ctx, conf, tracerProvider)
	if err != nil {
		return nil, err
	}

	err = migrateUp(handler.DB, conf.Database, conf.Migrations)
	if err != nil {
		_ = handler.Shutdown(ctx)

		return nil, err
	}

	return handler, nil
}

func migrateUp(db *sql.DB, dbName string, migrationsFS fs.FS) error {
	fsDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("%w: could not create migration file driver: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{}) //nolint:exhaustruct // use default config
	if err != nil {
		return fmt.Errorf("%w: could not get database driver: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	m, err := migrate.NewWithInstance("iofs", fsDriver, dbName, driver)
	if err != nil {
		return fmt.Errorf("%w: could not create new migration instance: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: could not migrate up: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return nil
}

type Handler struct {
	PGx    *pgxpool.Pool
	DB     *sql.DB // keep a sql.DB connection around for migration & integration tests, e.g. setting up test fixtures.
	Config Config
}

// Shutdown waits & closes all connections to PostgreSQL.
func (h Handler) Shutdown(_ context.Context) error {
	h.PGx.Close()

	err := h.DB.Close()
	if err != nil {
		return fmt.Errorf("%w: could not close db: %v", ErrConnectionFailed, err) //nolint:errorlint // prevent err in api
	}

	return nil
}
