package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/warehouse/internal/application"
	"github.com/go-arrower/records/contexts/warehouse/internal/domain"
)

var (
	ctx = context.Background()

	today = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
)

type testApp struct {
	application.App

	electronics domain.ElectronicsRepository
	groceries   domain.GroceriesRepository
}

// seeded returns the warehouse application on memory repositories with the sample data,
// where both repositories enforce a non-negative quantity.
func seeded(t *testing.T) testApp {
	t.Helper()

	electronics, err := arepo.NewMemoryRepository[domain.ElectronicItem, domain.ItemID](ctx,
		arepo.WithStructValidation(validator.New()),
	)
	require.NoError(t, err)

	groceries, err := arepo.NewMemoryRepository[domain.GroceryItem, domain.ItemID](ctx,
		arepo.WithStructValidation(validator.New()),
	)
	require.NoError(t, err)

	a := testApp{
		App: application.App{
			SeedData:    application.NewSeedDataCommandHandler(electronics, groceries),
			Electronics: application.NewInventory[domain.ElectronicItem](electronics),
			Groceries:   application.NewInventory[domain.GroceryItem](groceries),
		},
		electronics: electronics,
		groceries:   groceries,
	}

	require.NoError(t, a.SeedData.H(ctx, application.SeedDataCommand{Today: today}))

	return a
}
