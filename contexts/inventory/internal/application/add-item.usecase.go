package application

import (
	"context"
	"fmt"
	"time"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/inventory/internal/domain"
)

func NewAddItemRequestHandler(repo domain.ItemRepository) app.Request[AddItemRequest, AddItemResponse] {
	return app.NewValidatedRequest[AddItemRequest, AddItemResponse](nil, &addItemRequestHandler{repo: repo})
}

type addItemRequestHandler struct {
	repo domain.ItemRepository
}

type (
	AddItemRequest struct {
		Name     string `json:"name"     validate:"required"`
		Quantity int    `json:"quantity" validate:"gte=0"`
	}
	AddItemResponse struct {
		Item domain.InventoryItem `json:"item"`
	}
)

func (h *addItemRequestHandler) H(ctx context.Context, req AddItemRequest) (AddItemResponse, error) {
	id, err := h.repo.NextID(ctx)
	if err != nil {
		return AddItemResponse{}, fmt.Errorf("could not add item: %w", err)
	}

	item := domain.InventoryItem{
		ID:        id,
		Name:      req.Name,
		Quantity:  req.Quantity,
		DateAdded: time.Now().UTC().Truncate(time.Second),
	}

	if err := h.repo.Insert(ctx, item); err != nil {
		return AddItemResponse{}, fmt.Errorf("could not add item: %w", err)
	}

	return AddItemResponse{Item: item}, nil
}
