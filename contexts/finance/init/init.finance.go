package init

import (
	"context"
	"fmt"

	"github.com/go-arrower/records"
	"github.com/go-arrower/records/alog"
	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/finance/internal/application"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
	"github.com/go-arrower/records/contexts/finance/internal/interfaces/web"
)

const contextName = "finance"

// FinanceContext processes payments from accounts and reports the spending.
type FinanceContext struct {
	logger alog.Logger
	app    application.App
}

func NewFinanceContext(ctx context.Context, di *records.Container) (*FinanceContext, error) {
	if err := di.EnsureAllDependenciesPresent(); err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	accounts, err := records.NewRepository[domain.Account, string](
		ctx, di, contextName+".accounts", arepo.WithStructValidation(di.Validate),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	transactions, err := records.NewRepository[domain.Transaction, domain.TransactionID](
		ctx, di, contextName+".transactions", arepo.WithStructValidation(di.Validate),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	fc := &FinanceContext{
		logger: di.Logger,
		app: application.App{
			OpenAccount: app.NewInstrumentedCommand(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewOpenAccountCommandHandler(accounts),
			),
			GetAccount: app.NewInstrumentedQuery(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewGetAccountQueryHandler(accounts),
			),
			ProcessTransaction: app.NewInstrumentedRequest(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewProcessTransactionRequestHandler(accounts, transactions),
			),
			ListTransactions: app.NewInstrumentedQuery(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewListTransactionsQueryHandler(transactions),
			),
			SpendingByCategory: app.NewInstrumentedQuery(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewSpendingByCategoryQueryHandler(transactions, domain.NewCategoryIndex()),
			),
		},
	}

	controller := web.NewFinanceController(fc.app)

	routes := di.WebRouter.Group("/" + contextName)
	routes.GET("/accounts/:number", controller.GetAccount())
	routes.GET("/transactions", controller.ListTransactions())
	routes.POST("/transactions", controller.ProcessTransaction())
	routes.GET("/spending", controller.Spending())

	return fc, nil
}
