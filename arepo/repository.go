package arepo

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrNotFound     = errors.New("not found")
	ErrInvalidValue = errors.New("invalid value")

	// ErrPointerEntity is returned by NewMemoryRepository for entities of a pointer type.
	// They would be shared with the caller, so a rejected change could not be rolled back.
	ErrPointerEntity = errors.New("entity must not be a pointer")
)

// Repository is the general purpose interface of a store of uniquely identified entities.
// ID is the primary key and needs to be of one of the underlying types of PrimaryKey.
//
// Every operation that can fail reports exactly one of the sentinel errors per violated
// precondition, so callers can decide with errors.Is whether to log and continue or abort.
// If your repository needs additional methods, embed MemoryRepository in your own type.
type Repository[E any, ID PrimaryKey] interface {
	NextID(ctx context.Context) (ID, error)

	Insert(ctx context.Context, entity E) error
	InsertAll(ctx context.Context, entities []E) error
	GetByID(ctx context.Context, id ID) (E, error)
	TryGetByID(ctx context.Context, id ID) (E, bool)
	Remove(ctx context.Context, id ID) error
	UpdateField(ctx context.Context, id ID, mutate func(entity *E) error) error

	GetAll(ctx context.Context) ([]E, error)
	Exists(ctx context.Context, id ID) (bool, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// Identifier is implemented by entities that expose their primary key through a method
// instead of a struct field. It takes precedence over the ID field lookup.
type Identifier[ID PrimaryKey] interface {
	EntityID() ID
}

// PrimaryKey are the types allowed as a primary key used in the generic Repository.
type PrimaryKey interface {
	~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Option configures a MemoryRepository.
type Option func(config *repoConfig) error

type repoConfig struct {
	idFieldName string
	validate    func(entity any) error
	store       Store
	storeName   string
}

// WithIDField sets the name of the field that is used as an id or primary key.
// If not set, it is assumed that the entity struct has a field with the name "ID".
func WithIDField(idFieldName string) Option {
	return func(config *repoConfig) error {
		if idFieldName == "" {
			return errSetIDFieldFailed
		}

		config.idFieldName = idFieldName

		return nil
	}
}

// WithValidation sets a domain constraint every stored entity has to satisfy.
// It is checked on insert and after every UpdateField mutation.
// A returned error is reported as ErrInvalidValue.
func WithValidation[E any](validate func(entity E) error) Option {
	return func(config *repoConfig) error {
		if validate == nil {
			return errSetValidationFailed
		}

		config.validate = func(entity any) error {
			e, ok := entity.(E)
			if !ok {
				return fmt.Errorf("%w: unexpected entity type %T", errSetValidationFailed, entity)
			}

			return validate(e)
		}

		return nil
	}
}

// WithStructValidation validates entities by their `validate` struct tags.
// If validate is nil, a default validator.Validate is used.
func WithStructValidation(validate *validator.Validate) Option {
	if validate == nil {
		validate = validator.New()
	}

	return func(config *repoConfig) error {
		config.validate = validate.Struct

		return nil
	}
}

// WithStore sets a Store used to persist the Repository.
//
// There are no transactions: if the store fails, the change is rolled back in memory
// and the error is returned.
func WithStore(store Store) Option {
	return func(config *repoConfig) error {
		if store == nil {
			return errSetStoreFailed
		}

		config.store = store

		return nil
	}
}

// WithStoreName overwrites the name a Store should use to persist this Repository.
// The default is the entity's type name with a .json suffix.
func WithStoreName(name string) Option {
	return func(config *repoConfig) error {
		if name == "" {
			return errSetStoreFailed
		}

		config.storeName = name

		return nil
	}
}

func defaultStoreName(entity any) string {
	return reflect.TypeOf(entity).Elem().Name() + ".json"
}

var (
	errSetIDFieldFailed    = errors.New("cannot set id field: name is empty")
	errSetValidationFailed = errors.New("cannot set validation")
	errSetStoreFailed      = errors.New("cannot set store")
	errMissingID           = fmt.Errorf("%w: missing id", ErrInvalidValue)
	errIDChanged           = fmt.Errorf("%w: id must not change", ErrInvalidValue)
)
