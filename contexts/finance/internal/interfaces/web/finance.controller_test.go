package web_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/finance/internal/application"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
	"github.com/go-arrower/records/contexts/finance/internal/interfaces/web"
)

type failingTransaction struct {
	err error
}

func (h failingTransaction) H(
	_ context.Context,
	_ application.ProcessTransactionRequest,
) (application.ProcessTransactionResponse, error) {
	return application.ProcessTransactionResponse{}, fmt.Errorf("could not process transaction: %w", h.err)
}

type unknownAccount struct{}

func (unknownAccount) H(_ context.Context, _ application.GetAccountQuery) (application.GetAccountResponse, error) {
	return application.GetAccountResponse{}, arepo.ErrNotFound
}

func TestFinanceController_GetAccount(t *testing.T) {
	t.Parallel()

	newContext := func(number string) (echo.Context, *httptest.ResponseRecorder) {
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.SetParamNames("number")
		c.SetParamValues(number)

		return c, rec
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		c, rec := newContext("ACC-001")

		query := app.TestSuccessHandler[application.GetAccountQuery](application.GetAccountResponse{
			Account: domain.Account{Number: "ACC-001", Kind: domain.Savings, Balance: 43000},
		})
		handler := web.NewFinanceController(application.App{GetAccount: query})

		if assert.NoError(t, handler.GetAccount()(c)) {
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"account":{"number":"ACC-001","kind":"savings","balance":43000}}`, rec.Body.String())
			require.Len(t, query.Calls(), 1)
			assert.Equal(t, "ACC-001", query.Calls()[0].Number)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		t.Parallel()

		c, _ := newContext("ACC-404")

		handler := web.NewFinanceController(application.App{GetAccount: unknownAccount{}})

		var httpErr *echo.HTTPError
		err := handler.GetAccount()(c)
		if assert.ErrorAs(t, err, &httpErr) {
			assert.Equal(t, http.StatusNotFound, httpErr.Code)
		}
	})
}

func TestFinanceController_ProcessTransaction(t *testing.T) {
	t.Parallel()

	newContext := func(body string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := httptest.NewRecorder()

		return echo.New().NewContext(req, rec), rec
	}

	const body = `{"account":"ACC-001","processor":"bank-transfer","category":"Rent","amount":90000}`

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		c, rec := newContext(body)

		process := app.TestSuccessHandler[application.ProcessTransactionRequest](application.ProcessTransactionResponse{
			Transaction: domain.Transaction{ID: 1, Amount: 90000, Category: "Rent"},
			Balance:     10000,
		})
		handler := web.NewFinanceController(application.App{ProcessTransaction: process})

		if assert.NoError(t, handler.ProcessTransaction()(c)) {
			assert.Equal(t, http.StatusCreated, rec.Code)
			require.Len(t, process.Calls(), 1)
			assert.Equal(t, domain.Money(90000), process.Calls()[0].Amount)
			assert.Equal(t, domain.BankTransfer, process.Calls()[0].Processor)
		}
	})

	tests := map[string]struct {
		err  error
		code int
	}{
		"invalid":            {app.ErrValidation, http.StatusBadRequest},
		"unknown processor":  {domain.ErrUnknownProcessor, http.StatusBadRequest},
		"unknown account":    {arepo.ErrNotFound, http.StatusNotFound},
		"insufficient funds": {fmt.Errorf("%w: %w", arepo.ErrInvalidValue, domain.ErrInsufficientFunds), http.StatusUnprocessableEntity},
	}

	t.Run("blank category", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()

		accounts, err := arepo.NewMemoryRepository[domain.Account, string](ctx)
		require.NoError(t, err)
		require.NoError(t, accounts.Insert(ctx, domain.Account{Number: "ACC-001", Kind: domain.Savings, Balance: 100000}))

		transactions, err := arepo.NewMemoryRepository[domain.Transaction, domain.TransactionID](ctx)
		require.NoError(t, err)

		handler := web.NewFinanceController(application.App{
			ProcessTransaction: application.NewProcessTransactionRequestHandler(accounts, transactions),
		})

		c, _ := newContext(`{"account":"ACC-001","processor":"bank-transfer","category":"   ","amount":1000}`)

		var httpErr *echo.HTTPError
		err = handler.ProcessTransaction()(c)
		if assert.ErrorAs(t, err, &httpErr) {
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		}

		acc, _ := accounts.GetByID(ctx, "ACC-001")
		assert.Equal(t, domain.Money(100000), acc.Balance)
	})

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, _ := newContext(body)

			handler := web.NewFinanceController(application.App{ProcessTransaction: failingTransaction{err: tt.err}})

			var httpErr *echo.HTTPError
			err := handler.ProcessTransaction()(c)
			if assert.ErrorAs(t, err, &httpErr) {
				assert.Equal(t, tt.code, httpErr.Code)
			}
		})
	}
}

func TestFinanceController_Spending(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := web.NewFinanceController(application.App{
		SpendingByCategory: app.TestSuccessHandler[application.SpendingByCategoryQuery](application.SpendingByCategoryResponse{
			Categories: []application.CategorySpending{{Category: "Groceries", Transactions: 2, Total: 17050}},
			Total:      17050,
		}),
	})

	if assert.NoError(t, handler.Spending()(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"categories":[{"category":"Groceries","transactions":2,"total":17050}],"total":17050}`,
			rec.Body.String(),
		)
	}
}

func TestFinanceController_ListTransactions(t *testing.T) {
	t.Parallel()

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	handler := web.NewFinanceController(application.App{
		ListTransactions: app.TestFailureHandler[application.ListTransactionsQuery, application.ListTransactionsResponse](),
	})

	assert.Error(t, handler.ListTransactions()(c))
}
