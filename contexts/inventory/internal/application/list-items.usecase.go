package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/inventory/internal/domain"
)

func NewListItemsQueryHandler(repo domain.ItemRepository) app.Query[ListItemsQuery, ListItemsResponse] {
	return &listItemsQueryHandler{repo: repo}
}

type listItemsQueryHandler struct {
	repo domain.ItemRepository
}

type (
	ListItemsQuery    struct{}
	ListItemsResponse struct {
		Items []domain.InventoryItem `json:"items"`
	}
)

func (h *listItemsQueryHandler) H(ctx context.Context, _ ListItemsQuery) (ListItemsResponse, error) {
	items, err := h.repo.GetAll(ctx)
	if err != nil {
		return ListItemsResponse{}, fmt.Errorf("could not list items: %w", err)
	}

	return ListItemsResponse{Items: items}, nil
}
