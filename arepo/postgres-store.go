package arepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore returns a Store that keeps one row per repository in the table snapshots.
// The schema is created by the migrations of the postgres package.
func NewPostgresStore(pgx *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{PGx: pgx, Table: "snapshots"}
}

// PostgresStore persists the data of a MemoryRepository as a jsonb document.
// It is not a replacement for a proper repository: every change rewrites the whole document.
type PostgresStore struct {
	PGx   *pgxpool.Pool
	Table string
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar) //nolint:gochecknoglobals,lll // squirrel recommends this

func (s *PostgresStore) Store(ctx context.Context, name string, data any) error {
	if data == nil {
		return nil
	}

	if name == "" {
		return fmt.Errorf("%w: missing name", ErrStore)
	}

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	sql, args, err := psql.Insert(s.Table).
		Columns("name", "data").
		Values(name, b).
		Suffix("ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: could not build query: %v", ErrStore, err)
	}

	_, err = s.PGx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%w: could not save %s: %v", ErrStore, name, err)
	}

	return nil
}

func (s *PostgresStore) Load(ctx context.Context, name string, data any) error {
	if name == "" {
		return fmt.Errorf("%w: missing name", ErrLoad)
	}

	sql, args, err := psql.Select("data").From(s.Table).Where(squirrel.Eq{"name": name}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: could not build query: %v", ErrLoad, err)
	}

	var raw []byte

	err = pgxscan.Get(ctx, s.PGx, &raw, sql, args...)
	if pgxscan.NotFound(err) {
		return fmt.Errorf("%w: %s", ErrNoData, name)
	}

	if err != nil {
		return fmt.Errorf("%w: could not load %s: %v", ErrLoad, name, err)
	}

	err = json.Unmarshal(raw, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return nil
}

// Names returns the names of all stored repositories.
func (s *PostgresStore) Names(ctx context.Context) ([]string, error) {
	sql, args, err := psql.Select("name").From(s.Table).OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: could not build query: %v", ErrLoad, err)
	}

	names := []string{}

	err = pgxscan.Select(ctx, s.PGx, &names, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: could not list names: %v", ErrLoad, err)
	}

	return names, nil
}
