package application

import (
	"context"
	"fmt"
	"time"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/inventory/internal/domain"
)

func NewSeedDataCommandHandler(repo domain.ItemRepository) app.Command[SeedDataCommand] {
	return &seedDataCommandHandler{repo: repo}
}

type seedDataCommandHandler struct {
	repo domain.ItemRepository
}

// SeedDataCommand logs sample items, if the log is empty.
// Now is used as the DateAdded of all items, it defaults to the current time.
type SeedDataCommand struct {
	Now time.Time
}

func (h *seedDataCommandHandler) H(ctx context.Context, cmd SeedDataCommand) error {
	count, err := h.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("could not seed inventory: %w", err)
	}

	if count > 0 {
		return nil
	}

	now := cmd.Now
	if now.IsZero() {
		now = time.Now().UTC().Truncate(time.Second)
	}

	err = h.repo.InsertAll(ctx, []domain.InventoryItem{
		{ID: 1, Name: "Laptop", Quantity: 5, DateAdded: now},
		{ID: 2, Name: "Mouse", Quantity: 15, DateAdded: now},
		{ID: 3, Name: "Keyboard", Quantity: 10, DateAdded: now},
		{ID: 4, Name: "Monitor", Quantity: 7, DateAdded: now},
		{ID: 5, Name: "USB Drive", Quantity: 20, DateAdded: now},
	})
	if err != nil {
		return fmt.Errorf("could not seed inventory: %w", err)
	}

	return nil
}
