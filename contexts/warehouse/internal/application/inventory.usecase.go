package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/warehouse/internal/domain"
)

// Repository is the store of one kind of item.
type Repository[T any] interface {
	arepo.Repository[T, domain.ItemID]
}

func NewAddItemCommandHandler[T any](repo Repository[T]) app.Command[AddItemCommand[T]] {
	return &addItemCommandHandler[T]{repo: repo}
}

type addItemCommandHandler[T any] struct {
	repo Repository[T]
}

type AddItemCommand[T any] struct {
	Item T
}

func (h *addItemCommandHandler[T]) H(ctx context.Context, cmd AddItemCommand[T]) error {
	err := h.repo.Insert(ctx, cmd.Item)
	if err != nil {
		return fmt.Errorf("could not add item: %w", err)
	}

	return nil
}

func NewListItemsQueryHandler[T any](repo Repository[T]) app.Query[ListItemsQuery, ListItemsResponse[T]] {
	return &listItemsQueryHandler[T]{repo: repo}
}

type listItemsQueryHandler[T any] struct {
	repo Repository[T]
}

type (
	ListItemsQuery             struct{}
	ListItemsResponse[T any] struct {
		Items []T `json:"items"`
	}
)

func (h *listItemsQueryHandler[T]) H(ctx context.Context, _ ListItemsQuery) (ListItemsResponse[T], error) {
	items, err := h.repo.GetAll(ctx)
	if err != nil {
		return ListItemsResponse[T]{}, fmt.Errorf("could not get items: %w", err)
	}

	return ListItemsResponse[T]{Items: items}, nil
}

func NewIncreaseStockRequestHandler[T any, PT domain.StockedItem[T]](
	repo Repository[T],
) app.Request[IncreaseStockRequest, IncreaseStockResponse] {
	return app.NewValidatedRequest[IncreaseStockRequest, IncreaseStockResponse](
		nil,
		&increaseStockRequestHandler[T, PT]{repo: repo},
	)
}

type increaseStockRequestHandler[T any, PT domain.StockedItem[T]] struct {
	repo Repository[T]
}

type (
	IncreaseStockRequest struct {
		ID     domain.ItemID `validate:"required"`
		Amount int           `validate:"gt=0"`
	}
	IncreaseStockResponse struct {
		ID       domain.ItemID `json:"id"`
		Name     string        `json:"name"`
		Quantity int           `json:"quantity"`
	}
)

func (h *increaseStockRequestHandler[T, PT]) H(ctx context.Context, req IncreaseStockRequest) (IncreaseStockResponse, error) { //nolint:lll
	var res IncreaseStockResponse

	err := h.repo.UpdateField(ctx, req.ID, func(item *T) error {
		stocked := PT(item)

		if err := stocked.SetQuantity(stocked.InStock() + req.Amount); err != nil {
			return err
		}

		res = IncreaseStockResponse{ID: stocked.EntityID(), Name: stocked.ItemName(), Quantity: stocked.InStock()}

		return nil
	})
	if err != nil {
		return IncreaseStockResponse{}, fmt.Errorf("could not increase stock: %w", err)
	}

	return res, nil
}

func NewSetQuantityCommandHandler[T any, PT domain.StockedItem[T]](repo Repository[T]) app.Command[SetQuantityCommand] {
	return &setQuantityCommandHandler[T, PT]{repo: repo}
}

type setQuantityCommandHandler[T any, PT domain.StockedItem[T]] struct {
	repo Repository[T]
}

// SetQuantityCommand replaces the quantity of an item.
// A negative quantity is rejected with arepo.ErrInvalidValue and the item keeps its quantity.
type SetQuantityCommand struct {
	ID       domain.ItemID
	Quantity int
}

func (h *setQuantityCommandHandler[T, PT]) H(ctx context.Context, cmd SetQuantityCommand) error {
	err := h.repo.UpdateField(ctx, cmd.ID, func(item *T) error {
		return PT(item).SetQuantity(cmd.Quantity)
	})
	if err != nil {
		return fmt.Errorf("could not set quantity: %w", err)
	}

	return nil
}

func NewRemoveItemsRequestHandler[T any](repo Repository[T]) app.Request[RemoveItemsRequest, RemoveItemsResponse] {
	return &removeItemsRequestHandler[T]{repo: repo}
}

type removeItemsRequestHandler[T any] struct {
	repo Repository[T]
}

type (
	RemoveItemsRequest struct {
		IDs []domain.ItemID
	}
	// RemoveItemsResponse lists the outcome per id. Unknown ids do not stop the removal of the others.
	RemoveItemsResponse struct {
		Removed  []domain.ItemID `json:"removed"`
		NotFound []domain.ItemID `json:"notFound"`
	}
)

func (h *removeItemsRequestHandler[T]) H(ctx context.Context, req RemoveItemsRequest) (RemoveItemsResponse, error) {
	res := RemoveItemsResponse{Removed: []domain.ItemID{}, NotFound: []domain.ItemID{}}

	for _, id := range req.IDs {
		err := h.repo.Remove(ctx, id)
		if errors.Is(err, arepo.ErrNotFound) {
			res.NotFound = append(res.NotFound, id)

			continue
		}

		if err != nil {
			return res, fmt.Errorf("could not remove item %d: %w", id, err)
		}

		res.Removed = append(res.Removed, id)
	}

	return res, nil
}
