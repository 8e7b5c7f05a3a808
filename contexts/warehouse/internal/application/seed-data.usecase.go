package application

import (
	"context"
	"fmt"
	"time"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/warehouse/internal/domain"
)

func NewSeedDataCommandHandler(
	electronics domain.ElectronicsRepository,
	groceries domain.GroceriesRepository,
) app.Command[SeedDataCommand] {
	return &seedDataCommandHandler{electronics: electronics, groceries: groceries}
}

type seedDataCommandHandler struct {
	electronics domain.ElectronicsRepository
	groceries   domain.GroceriesRepository
}

// SeedDataCommand stocks an empty warehouse with sample items.
// Today is the day expiry dates are relative to, it defaults to the current day.
type SeedDataCommand struct {
	Today time.Time
}

func (h *seedDataCommandHandler) H(ctx context.Context, cmd SeedDataCommand) error {
	today := cmd.Today
	if today.IsZero() {
		today = time.Now().UTC().Truncate(24 * time.Hour) //nolint:mnd // one day
	}

	if err := seed[domain.ElectronicItem](ctx, h.electronics, []domain.ElectronicItem{
		{ID: 1, Name: "Laptop", Quantity: 10, Brand: "Dell", WarrantyMonths: 24},
		{ID: 2, Name: "Smartphone", Quantity: 15, Brand: "Samsung", WarrantyMonths: 12},
		{ID: 3, Name: "Monitor", Quantity: 8, Brand: "LG", WarrantyMonths: 18},
	}); err != nil {
		return fmt.Errorf("could not seed electronics: %w", err)
	}

	if err := seed[domain.GroceryItem](ctx, h.groceries, []domain.GroceryItem{
		{ID: 101, Name: "Milk", Quantity: 20, ExpiryDate: today.AddDate(0, 0, 5)},
		{ID: 102, Name: "Bread", Quantity: 30, ExpiryDate: today.AddDate(0, 0, 2)},
		{ID: 103, Name: "Eggs", Quantity: 50, ExpiryDate: today.AddDate(0, 0, 10)},
	}); err != nil {
		return fmt.Errorf("could not seed groceries: %w", err)
	}

	return nil
}

// seed inserts items, if repo is empty.
func seed[T any](ctx context.Context, repo Repository[T], items []T) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err //nolint:wrapcheck // wrapped by caller
	}

	if count > 0 {
		return nil
	}

	return repo.InsertAll(ctx, items) //nolint:wrapcheck // wrapped by caller
}
