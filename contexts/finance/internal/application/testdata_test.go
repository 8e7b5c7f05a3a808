package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/finance/internal/application"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

var (
	ctx = context.Background()

	today = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
)

const savings = "ACC-001"

type testApp struct {
	application.App

	accounts     domain.AccountRepository
	transactions domain.TransactionRepository
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	accounts, err := arepo.NewMemoryRepository[domain.Account, string](ctx, arepo.WithStructValidation(validator.New()))
	require.NoError(t, err)

	transactions, err := arepo.NewMemoryRepository[domain.Transaction, domain.TransactionID](ctx,
		arepo.WithStructValidation(validator.New()),
	)
	require.NoError(t, err)

	return testApp{
		App: application.App{
			OpenAccount:        application.NewOpenAccountCommandHandler(accounts),
			GetAccount:         application.NewGetAccountQueryHandler(accounts),
			ProcessTransaction: application.NewProcessTransactionRequestHandler(accounts, transactions),
			ListTransactions:   application.NewListTransactionsQueryHandler(transactions),
			SpendingByCategory: application.NewSpendingByCategoryQueryHandler(transactions, domain.NewCategoryIndex()),
		},
		accounts:     accounts,
		transactions: transactions,
	}
}

// withSavings returns an app with a savings account holding 1,000.00.
func withSavings(t *testing.T) testApp {
	t.Helper()

	a := newTestApp(t)

	require.NoError(t, a.OpenAccount.H(ctx, application.OpenAccountCommand{
		Number:         savings,
		Kind:           domain.Savings,
		InitialBalance: domain.NewMoney(1000, 0),
	}))

	return a
}

func pay(amount domain.Money, category string, processor string) application.ProcessTransactionRequest {
	return application.ProcessTransactionRequest{
		Date:      today,
		Account:   savings,
		Processor: processor,
		Category:  category,
		Amount:    amount,
	}
}

var errStoreDown = errors.New("store down")

// failingStore accepts the given number of saves and fails every later one.
type failingStore struct {
	mu    sync.Mutex
	saves int
}

func (s *failingStore) Store(_ context.Context, _ string, _ any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saves <= 0 {
		return errStoreDown
	}

	s.saves--

	return nil
}

func (s *failingStore) Load(_ context.Context, _ string, _ any) error {
	return arepo.ErrNoData
}

// withFailingStores returns an app with a savings account holding 1,000.00, where
// every transaction fails to be stored and the account can be saved accountSaves more times.
func withFailingStores(t *testing.T, accountSaves int) testApp {
	t.Helper()

	accounts, err := arepo.NewMemoryRepository[domain.Account, string](ctx,
		arepo.WithStructValidation(validator.New()),
		arepo.WithStore(&failingStore{saves: accountSaves + 1}),
	)
	require.NoError(t, err)

	transactions, err := arepo.NewMemoryRepository[domain.Transaction, domain.TransactionID](ctx,
		arepo.WithStore(&failingStore{}),
	)
	require.NoError(t, err)

	a := testApp{
		App: application.App{
			OpenAccount:        application.NewOpenAccountCommandHandler(accounts),
			ProcessTransaction: application.NewProcessTransactionRequestHandler(accounts, transactions),
		},
		accounts:     accounts,
		transactions: transactions,
	}

	require.NoError(t, a.OpenAccount.H(ctx, application.OpenAccountCommand{
		Number:         savings,
		Kind:           domain.Savings,
		InitialBalance: domain.NewMoney(1000, 0),
	}))

	return a
}
