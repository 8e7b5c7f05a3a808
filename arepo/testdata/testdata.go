package testdata

import (
	"errors"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

type EntityID string

type Entity struct {
	ID   EntityID
	Name string
}

// EntityWithNamePK uses Name as its primary key, see arepo.WithIDField.
type EntityWithNamePK struct {
	Name        string
	Description string
}

type (
	EntityIDInt     int
	EntityWithIntPK struct {
		ID       EntityIDInt
		Name     string
		Quantity int `validate:"gte=0"`
	}
)

// EntityWithIdentifier exposes its primary key via arepo.Identifier.
type EntityWithIdentifier struct {
	Code string
	Name string
}

func (e EntityWithIdentifier) EntityID() string { return e.Code }

var ErrNegativeQuantity = errors.New("quantity cannot be negative")

// ValidateQuantity is a domain constraint for EntityWithIntPK.
func ValidateQuantity(e EntityWithIntPK) error {
	if e.Quantity < 0 {
		return ErrNegativeQuantity
	}

	return nil
}

var DefaultEntity = RandomEntity() //nolint:gochecknoglobals // shared fixture

func RandomEntity() Entity {
	return Entity{
		ID:   EntityID(uuid.New().String()),
		Name: gofakeit.Name(),
	}
}

func RandomEntityWithIntPK(id EntityIDInt) EntityWithIntPK {
	return EntityWithIntPK{
		ID:       id,
		Name:     gofakeit.Name(),
		Quantity: gofakeit.Number(0, 100),
	}
}
