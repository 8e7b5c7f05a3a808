package init

import (
	"context"
	"fmt"

	"github.com/go-arrower/records"
	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/inventory/internal/application"
	"github.com/go-arrower/records/contexts/inventory/internal/domain"
	"github.com/go-arrower/records/contexts/inventory/internal/interfaces/web"
)

const (
	contextName = "inventory"
	storeName   = contextName + ".items"
)

// InventoryContext is a log of items that survives restarts of the application.
type InventoryContext struct {
	di  *records.Container
	app application.App
}

func NewInventoryContext(ctx context.Context, di *records.Container) (*InventoryContext, error) {
	if err := di.EnsureAllDependenciesPresent(); err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	ic := &InventoryContext{di: di}

	a, err := ic.newSession(ctx, di.Store)
	if err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	ic.app = a

	controller := web.NewItemsController(ic.app)

	routes := di.WebRouter.Group("/" + contextName)
	routes.GET("/items", controller.ListItems())
	routes.POST("/items", controller.AddItem())

	return ic, nil
}

// newSession returns the use cases on a new repository, that loads the log from store.
func (ic *InventoryContext) newSession(ctx context.Context, store arepo.Store) (application.App, error) {
	di := ic.di

	repo, err := records.NewRepository[domain.InventoryItem, domain.ItemID](ctx, di, storeName,
		arepo.WithStore(store),
		arepo.WithStructValidation(di.Validate),
	)
	if err != nil {
		return application.App{}, err
	}

	return application.App{
		SeedData: app.NewInstrumentedCommand(di.TraceProvider, di.MeterProvider, di.Logger,
			application.NewSeedDataCommandHandler(repo),
		),
		AddItem: app.NewInstrumentedRequest(di.TraceProvider, di.MeterProvider, di.Logger,
			application.NewAddItemRequestHandler(repo),
		),
		ListItems: app.NewInstrumentedQuery(di.TraceProvider, di.MeterProvider, di.Logger,
			application.NewListItemsQueryHandler(repo),
		),
	}, nil
}

// Setup logs the sample items, if the log is empty.
func (ic *InventoryContext) Setup(ctx context.Context) error {
	if err := ic.app.SeedData.H(ctx, application.SeedDataCommand{}); err != nil {
		return fmt.Errorf("could not set up %s context: %w", contextName, err)
	}

	return nil
}
