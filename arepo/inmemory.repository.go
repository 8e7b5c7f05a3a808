package arepo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var _ Repository[struct{ ID string }, string] = (*MemoryRepository[struct{ ID string }, string])(nil)

// NewMemoryRepository returns an implementation of Repository for the given entity E.
// It is expected that E implements Identifier or has a field called `ID`,
// that is used as the primary key. The field can be overwritten by WithIDField.
//
// If a Store is given, the repository loads its data on construction and saves
// the full list of entities after each change.
// If your repository needs additional methods, you can embed this repo into your own implementation
// to extend it easily to your use case. See the examples in the test files.
//
// E has to be a value type, e.g. Patient and not *Patient, otherwise ErrPointerEntity is returned.
func NewMemoryRepository[E any, ID PrimaryKey](ctx context.Context, opts ...Option) (*MemoryRepository[E, ID], error) {
	if t := reflect.TypeOf(new(E)).Elem(); t.Kind() == reflect.Pointer {
		return nil, fmt.Errorf("could not initialise %s memory repository: %w", t, ErrPointerEntity)
	}

	repo := &MemoryRepository[E, ID]{
		RWMutex:      &sync.RWMutex{},
		data:         make(map[ID]E),
		order:        []ID{},
		currentIntID: *new(ID),
		repoConfig: repoConfig{
			idFieldName: "ID",
			validate:    nil,
			store:       NoopStore,
			storeName:   defaultStoreName(new(E)),
		},
	}

	for _, opt := range opts {
		if err := opt(&repo.repoConfig); err != nil {
			name := reflect.TypeOf(new(E)).Elem().Name()
			return nil, fmt.Errorf("could not initialise %s memory repository: %w", name, err)
		}
	}

	if err := repo.load(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

// MemoryRepository implements Repository in a generic way.
// Entities are kept in insertion order, so GetAll is deterministic.
//
// Warning: the consistency of MemoryRepository is not on par with ACID guarantees of a RDBMS.
// A failing operation leaves the collection unchanged, but there are no transactions
// spanning multiple calls or repositories.
type MemoryRepository[E any, ID PrimaryKey] struct {
	// RWMutex is embedded, so that repositories who extend MemoryRepository can lock the same mutex as other methods.
	*sync.RWMutex

	data         map[ID]E
	order        []ID
	currentIntID ID

	repoConfig
}

const panicIDNotSupported = "type of ID is not supported: "

func (repo *MemoryRepository[E, ID]) getID(entity E) ID { //nolint:ireturn // valid use of generics
	if identifier, ok := any(entity).(Identifier[ID]); ok {
		return identifier.EntityID()
	}

	val := reflect.Indirect(reflect.ValueOf(entity))

	idField := val.FieldByName(repo.idFieldName)
	if !idField.IsValid() {
		panic("entity does not have the field with name: " + repo.idFieldName)
	}

	var id ID

	switch idField.Kind() {
	case reflect.String:
		reflect.ValueOf(&id).Elem().SetString(idField.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		reflect.ValueOf(&id).Elem().SetInt(idField.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		reflect.ValueOf(&id).Elem().SetUint(idField.Uint())
	default:
		panic(panicIDNotSupported + idField.Kind().String())
	}

	return id
}

// check runs all constraints an entity has to satisfy to be stored.
func (repo *MemoryRepository[E, ID]) check(entity E) (ID, error) {
	id := repo.getID(entity)
	if id == *new(ID) {
		return id, errMissingID
	}

	if repo.validate != nil {
		if err := repo.validate(entity); err != nil {
			return id, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
	}

	return id, nil
}

// NextID returns a new ID. It can be of the underlying type of string or integer.
// Integer IDs continue after the highest ID seen by the repository.
func (repo *MemoryRepository[E, ID]) NextID(_ context.Context) (ID, error) { //nolint:ireturn,lll // fp, as it is not recognised even with "generic" setting
	var id ID

	switch reflect.TypeOf(id).Kind() {
	case reflect.String:
		reflect.ValueOf(&id).Elem().SetString(uuid.New().String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		repo.Lock()
		defer repo.Unlock()

		// the value is stored in the repo, but the generic does not know which type it is,
		// so reflection is used to increment it.
		newID := reflect.ValueOf(&repo.currentIntID).Elem().Int() + 1
		reflect.ValueOf(&repo.currentIntID).Elem().SetInt(newID)
		reflect.ValueOf(&id).Elem().SetInt(newID)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		repo.Lock()
		defer repo.Unlock()

		newID := reflect.ValueOf(&repo.currentIntID).Elem().Uint() + 1
		reflect.ValueOf(&repo.currentIntID).Elem().SetUint(newID)
		reflect.ValueOf(&id).Elem().SetUint(newID)
	default:
		panic(panicIDNotSupported + reflect.TypeOf(id).Kind().String())
	}

	return id, nil
}

// trackID moves the integer sequence of NextID past id. Requires the lock.
func (repo *MemoryRepository[E, ID]) trackID(id ID) {
	current := reflect.ValueOf(&repo.currentIntID).Elem()
	given := reflect.ValueOf(id)

	switch given.Kind() { //nolint:exhaustive // strings use uuids and have no sequence
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if given.Int() > current.Int() {
			current.SetInt(given.Int())
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if given.Uint() > current.Uint() {
			current.SetUint(given.Uint())
		}
	}
}

func (repo *MemoryRepository[E, ID]) Insert(ctx context.Context, entity E) error {
	repo.Lock()
	defer repo.Unlock()

	id, err := repo.check(entity)
	if err != nil {
		return err
	}

	if _, found := repo.data[id]; found {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, id)
	}

	repo.data[id] = entity
	repo.order = append(repo.order, id)

	err = repo.save(ctx)
	if err != nil {
		delete(repo.data, id)
		repo.order = repo.order[:len(repo.order)-1]

		return err
	}

	repo.trackID(id)

	return nil
}

// InsertAll inserts all entities or none of them.
func (repo *MemoryRepository[E, ID]) InsertAll(ctx context.Context, entities []E) error {
	repo.Lock()
	defer repo.Unlock()

	ids := make([]ID, 0, len(entities))
	seen := make(map[ID]struct{}, len(entities))

	for _, e := range entities {
		id, err := repo.check(e)
		if err != nil {
			return err
		}

		_, inRepo := repo.data[id]
		_, inBatch := seen[id]

		if inRepo || inBatch {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, id)
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for i, e := range entities {
		repo.data[ids[i]] = e
	}

	repo.order = append(repo.order, ids...)

	err := repo.save(ctx)
	if err != nil {
		for _, id := range ids {
			delete(repo.data, id)
		}

		repo.order = repo.order[:len(repo.order)-len(ids)]

		return err
	}

	for _, id := range ids {
		repo.trackID(id)
	}

	return nil
}

func (repo *MemoryRepository[E, ID]) GetByID(_ context.Context, id ID) (E, error) { //nolint:ireturn,lll // valid use of generics
	repo.RLock()
	defer repo.RUnlock()

	if e, ok := repo.data[id]; ok {
		return e, nil
	}

	return *new(E), fmt.Errorf("%w: %v", ErrNotFound, id)
}

func (repo *MemoryRepository[E, ID]) TryGetByID(_ context.Context, id ID) (E, bool) { //nolint:ireturn,lll // valid use of generics
	repo.RLock()
	defer repo.RUnlock()

	e, ok := repo.data[id]

	return e, ok
}

func (repo *MemoryRepository[E, ID]) Remove(ctx context.Context, id ID) error {
	repo.Lock()
	defer repo.Unlock()

	oldEntity, found := repo.data[id]
	if !found {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}

	pos := slices.Index(repo.order, id)

	delete(repo.data, id)
	repo.order = slices.Delete(repo.order, pos, pos+1)

	err := repo.save(ctx)
	if err != nil {
		repo.data[id] = oldEntity
		repo.order = slices.Insert(repo.order, pos, id)

		return err
	}

	return nil
}

// UpdateField applies mutate to a copy of the entity with the given id and stores the result.
// The mutation is rejected with ErrInvalidValue, if mutate returns an error,
// the result violates the repository's validation, or the id of the entity changes.
// A rejected mutation leaves the stored entity untouched.
//
// Note, that the copy is shallow: mutate must not change maps or slices shared with the stored entity.
func (repo *MemoryRepository[E, ID]) UpdateField(ctx context.Context, id ID, mutate func(entity *E) error) error {
	repo.Lock()
	defer repo.Unlock()

	oldEntity, found := repo.data[id]
	if !found {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}

	entity := oldEntity

	if err := mutate(&entity); err != nil {
		if errors.Is(err, ErrInvalidValue) {
			return err
		}

		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	newID, err := repo.check(entity)
	if err != nil {
		return err
	}

	if newID != id {
		return errIDChanged
	}

	repo.data[id] = entity

	err = repo.save(ctx)
	if err != nil {
		repo.data[id] = oldEntity

		return err
	}

	return nil
}

func (repo *MemoryRepository[E, ID]) GetAll(_ context.Context) ([]E, error) {
	repo.RLock()
	defer repo.RUnlock()

	return repo.all(), nil
}

func (repo *MemoryRepository[E, ID]) Exists(_ context.Context, id ID) (bool, error) {
	repo.RLock()
	defer repo.RUnlock()

	_, ok := repo.data[id]

	return ok, nil
}

func (repo *MemoryRepository[E, ID]) Count(_ context.Context) (int, error) {
	repo.RLock()
	defer repo.RUnlock()

	return len(repo.data), nil
}

func (repo *MemoryRepository[E, ID]) Clear(ctx context.Context) error {
	repo.Lock()
	defer repo.Unlock()

	oldData := repo.data
	oldOrder := repo.order

	repo.data = make(map[ID]E)
	repo.order = []ID{}

	err := repo.save(ctx)
	if err != nil {
		repo.data = oldData
		repo.order = oldOrder

		return err
	}

	return nil
}

// all returns a copy of the collection in insertion order. Requires the lock.
func (repo *MemoryRepository[E, ID]) all() []E {
	result := make([]E, 0, len(repo.order))

	for _, id := range repo.order {
		result = append(result, repo.data[id])
	}

	return result
}

// save hands the full collection to the store. Requires the lock.
func (repo *MemoryRepository[E, ID]) save(ctx context.Context) error {
	err := repo.store.Store(ctx, repo.storeName, repo.all())
	if err != nil {
		return fmt.Errorf("could not save %s: %w", repo.storeName, err)
	}

	return nil
}

func (repo *MemoryRepository[E, ID]) load(ctx context.Context) error {
	var entities []E

	err := repo.store.Load(ctx, repo.storeName, &entities)
	if errors.Is(err, ErrNoData) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not load %s: %w", repo.storeName, err)
	}

	for _, e := range entities {
		id, err := repo.check(e)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrLoad, repo.storeName, err)
		}

		if _, found := repo.data[id]; found {
			return fmt.Errorf("%w: %s: %w: %v", ErrLoad, repo.storeName, ErrDuplicateKey, id)
		}

		repo.data[id] = e
		repo.order = append(repo.order, id)
		repo.trackID(id)
	}

	return nil
}
