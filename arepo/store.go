package arepo

import (
	"context"
	"errors"
)

var (
	ErrStore  = errors.New("could not store repository data")
	ErrLoad   = errors.New("could not load repository data")
	ErrNoData = errors.New("no data stored")
)

// Store persists the data of a MemoryRepository as a whole.
// The repository hands over the full list of its entities on every change and
// expects to receive the same list back from Load.
//
// Load returns an error wrapping ErrNoData, if nothing was stored under name yet.
type Store interface {
	Store(ctx context.Context, name string, data any) error
	Load(ctx context.Context, name string, data any) error
}

var NoopStore Store = &noopStore{} //nolint:gochecknoglobals // pattern from std lib slog.DiscardHandler

type noopStore struct{}

func (n noopStore) Store(_ context.Context, _ string, _ any) error {
	return nil
}

func (n noopStore) Load(_ context.Context, _ string, _ any) error {
	return ErrNoData
}
