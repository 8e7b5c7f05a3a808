package application

import (
	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/warehouse/internal/domain"
)

// App is a dependency injection container.
type App struct {
	SeedData    app.Command[SeedDataCommand]
	Electronics Inventory[domain.ElectronicItem]
	Groceries   Inventory[domain.GroceryItem]
}

// Inventory are the use cases available for each kind of item.
type Inventory[T any] struct {
	AddItem       app.Command[AddItemCommand[T]]
	ListItems     app.Query[ListItemsQuery, ListItemsResponse[T]]
	IncreaseStock app.Request[IncreaseStockRequest, IncreaseStockResponse]
	SetQuantity   app.Command[SetQuantityCommand]
	RemoveItems   app.Request[RemoveItemsRequest, RemoveItemsResponse]
}

// NewInventory returns the use cases working on repo.
func NewInventory[T any, PT domain.StockedItem[T]](repo Repository[T]) Inventory[T] {
	return Inventory[T]{
		AddItem:       NewAddItemCommandHandler[T](repo),
		ListItems:     NewListItemsQueryHandler[T](repo),
		IncreaseStock: NewIncreaseStockRequestHandler[T, PT](repo),
		SetQuantity:   NewSetQuantityCommandHandler[T, PT](repo),
		RemoveItems:   NewRemoveItemsRequestHandler[T](repo),
	}
}
