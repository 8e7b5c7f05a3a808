package init

import (
	"context"
	"fmt"

	"github.com/go-arrower/records"
	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/warehouse/internal/application"
	"github.com/go-arrower/records/contexts/warehouse/internal/domain"
	"github.com/go-arrower/records/contexts/warehouse/internal/interfaces/web"
)

const contextName = "warehouse"

// WarehouseContext keeps the stock of electronics and groceries.
type WarehouseContext struct {
	app application.App
}

func NewWarehouseContext(ctx context.Context, di *records.Container) (*WarehouseContext, error) {
	if err := di.EnsureAllDependenciesPresent(); err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	electronics, err := records.NewRepository[domain.ElectronicItem, domain.ItemID](
		ctx, di, contextName+"."+string(domain.Electronics), arepo.WithStructValidation(di.Validate),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	groceries, err := records.NewRepository[domain.GroceryItem, domain.ItemID](
		ctx, di, contextName+"."+string(domain.Groceries), arepo.WithStructValidation(di.Validate),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	wc := &WarehouseContext{
		app: application.App{
			SeedData: app.NewInstrumentedCommand(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewSeedDataCommandHandler(electronics, groceries),
			),
			Electronics: instrumented(di, application.NewInventory[domain.ElectronicItem](electronics)),
			Groceries:   instrumented(di, application.NewInventory[domain.GroceryItem](groceries)),
		},
	}

	ic := web.NewItemsController(wc.app)

	di.WebRouter.GET("/"+contextName+"/:kind", ic.ListItems())

	return wc, nil
}

func instrumented[T any](di *records.Container, inv application.Inventory[T]) application.Inventory[T] {
	return application.Inventory[T]{
		AddItem:       app.NewInstrumentedCommand(di.TraceProvider, di.MeterProvider, di.Logger, inv.AddItem),
		ListItems:     app.NewInstrumentedQuery(di.TraceProvider, di.MeterProvider, di.Logger, inv.ListItems),
		IncreaseStock: app.NewInstrumentedRequest(di.TraceProvider, di.MeterProvider, di.Logger, inv.IncreaseStock),
		SetQuantity:   app.NewInstrumentedCommand(di.TraceProvider, di.MeterProvider, di.Logger, inv.SetQuantity),
		RemoveItems:   app.NewInstrumentedRequest(di.TraceProvider, di.MeterProvider, di.Logger, inv.RemoveItems),
	}
}

// Setup stocks the warehouse with sample items, if it is empty.
func (wc *WarehouseContext) Setup(ctx context.Context) error {
	if err := wc.app.SeedData.H(ctx, application.SeedDataCommand{}); err != nil {
		return fmt.Errorf("could not set up %s context: %w", contextName, err)
	}

	return nil
}
