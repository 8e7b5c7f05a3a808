package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/inventory/internal/application"
	"github.com/go-arrower/records/contexts/inventory/internal/domain"
)

var (
	ctx = context.Background()

	now = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
)

// newSession returns the inventory application on a fresh repository, that loads its data from store.
func newSession(t *testing.T, store arepo.Store) (application.App, domain.ItemRepository) {
	t.Helper()

	repo, err := arepo.NewMemoryRepository[domain.InventoryItem, domain.ItemID](ctx,
		arepo.WithStore(store),
		arepo.WithStoreName("inventory.items"),
		arepo.WithStructValidation(validator.New()),
	)
	require.NoError(t, err)

	return application.App{
		SeedData:  application.NewSeedDataCommandHandler(repo),
		AddItem:   application.NewAddItemRequestHandler(repo),
		ListItems: application.NewListItemsQueryHandler(repo),
	}, repo
}
