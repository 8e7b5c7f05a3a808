// Package aindex derives secondary indexes from a snapshot of entities.
//
// An index is never kept in sync with the store it was built from.
// After changing the store, call Build or BuildFrom again.
package aindex

import (
	"context"
	"fmt"
	"sync"
)

// Source is anything that can enumerate all its entities, e.g. an arepo.Repository.
type Source[E any] interface {
	GetAll(ctx context.Context) ([]E, error)
}

// New returns an empty GroupIndex.
func New[K comparable, E any]() *GroupIndex[K, E] {
	return &GroupIndex[K, E]{
		mu:     sync.RWMutex{},
		groups: map[K][]E{},
		keys:   []K{},
		size:   0,
	}
}

// GroupIndex maps a foreign key to all entities sharing it.
// Within a group, entities keep the order they were given to Build.
// It is safe for concurrent use.
type GroupIndex[K comparable, E any] struct {
	mu sync.RWMutex

	groups map[K][]E
	keys   []K
	size   int
}

// Build discards the current content and groups entities by keyOf.
func (idx *GroupIndex[K, E]) Build(entities []E, keyOf func(entity E) K) {
	groups := make(map[K][]E)
	keys := []K{}

	for _, e := range entities {
		k := keyOf(e)

		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}

		groups[k] = append(groups[k], e)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.groups = groups
	idx.keys = keys
	idx.size = len(entities)
}

// BuildFrom builds the index from all entities of source.
// On error, the index keeps its previous content.
func (idx *GroupIndex[K, E]) BuildFrom(ctx context.Context, source Source[E], keyOf func(entity E) K) error {
	entities, err := source.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("could not build index: %w", err)
	}

	idx.Build(entities, keyOf)

	return nil
}

// GetByKey returns a copy of the group for key.
// An unknown key returns an empty slice.
func (idx *GroupIndex[K, E]) GetByKey(key K) []E {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	group := idx.groups[key]
	result := make([]E, len(group))
	copy(result, group)

	return result
}

// Keys returns all keys in the order they were first seen by Build.
func (idx *GroupIndex[K, E]) Keys() []K {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	keys := make([]K, len(idx.keys))
	copy(keys, idx.keys)

	return keys
}

// Len returns the number of groups.
func (idx *GroupIndex[K, E]) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.keys)
}

// Size returns the number of indexed entities.
func (idx *GroupIndex[K, E]) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.size
}
