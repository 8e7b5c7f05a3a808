package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-arrower/records/arepo"
)

var ErrNegativeQuantity = errors.New("quantity cannot be negative")

type ItemID int

// Stocked is the capability every item kept in the warehouse has:
// it is identified by an ItemID and has a quantity in stock.
type Stocked interface {
	arepo.Identifier[ItemID]

	ItemName() string
	InStock() int
	SetQuantity(quantity int) error
}

// StockedItem is a constraint for generic use cases that change the quantity of an item T.
type StockedItem[T any] interface {
	*T
	Stocked
}

type ElectronicItem struct {
	ID             ItemID `json:"id"`
	Name           string `json:"name"           validate:"required"`
	Quantity       int    `json:"quantity"       validate:"gte=0"`
	Brand          string `json:"brand"`
	WarrantyMonths int    `json:"warrantyMonths" validate:"gte=0"`
}

func (i ElectronicItem) EntityID() ItemID { return i.ID }
func (i ElectronicItem) ItemName() string { return i.Name }
func (i ElectronicItem) InStock() int     { return i.Quantity }

func (i *ElectronicItem) SetQuantity(quantity int) error {
	return setQuantity(&i.Quantity, quantity)
}

func (i ElectronicItem) String() string {
	return fmt.Sprintf("#%d %s by %s, %d months warranty, %d in stock", i.ID, i.Name, i.Brand, i.WarrantyMonths, i.Quantity)
}

type GroceryItem struct {
	ID         ItemID    `json:"id"`
	Name       string    `json:"name"       validate:"required"`
	Quantity   int       `json:"quantity"   validate:"gte=0"`
	ExpiryDate time.Time `json:"expiryDate"`
}

func (i GroceryItem) EntityID() ItemID { return i.ID }
func (i GroceryItem) ItemName() string { return i.Name }
func (i GroceryItem) InStock() int     { return i.Quantity }

func (i *GroceryItem) SetQuantity(quantity int) error {
	return setQuantity(&i.Quantity, quantity)
}

func (i GroceryItem) String() string {
	return fmt.Sprintf("#%d %s, expires %s, %d in stock", i.ID, i.Name, i.ExpiryDate.Format(time.DateOnly), i.Quantity)
}

func setQuantity(field *int, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeQuantity, quantity)
	}

	*field = quantity

	return nil
}

type (
	ElectronicsRepository = arepo.Repository[ElectronicItem, ItemID]
	GroceriesRepository   = arepo.Repository[GroceryItem, ItemID]
)

// Kind is the category of items a repository holds.
type Kind string

const (
	Electronics Kind = "electronics"
	Groceries   Kind = "groceries"
)
