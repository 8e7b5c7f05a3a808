package arepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/records/arepo"
)

var (
	ctx = context.Background()

	errStoreFailed = errors.New("store failed")
)

// spyStore records the names it is called with and can be told to fail.
type spyStore struct {
	mu sync.Mutex

	names []string
	calls int

	// failAfter lets Store fail once it was called more than failAfter times; -1 never fails.
	failAfter int
	failLoad  bool
}

func newSpyStore() *spyStore {
	return &spyStore{failAfter: -1}
}

func (s *spyStore) Store(_ context.Context, name string, _ any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.names = append(s.names, name)

	if s.failAfter >= 0 && s.calls > s.failAfter {
		return errStoreFailed
	}

	return nil
}

func (s *spyStore) Load(_ context.Context, name string, _ any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.names = append(s.names, name)

	if s.failLoad {
		return errStoreFailed
	}

	return arepo.ErrNoData
}

// assertNames asserts, that the store was only ever called with name.
func (s *spyStore) assertNames(t *testing.T, name string) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.names {
		assert.Equal(t, name, n)
	}
}
