package application_test

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/finance/internal/application"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

func TestProcessTransactionRequestHandler_H(t *testing.T) {
	t.Parallel()

	t.Run("process", func(t *testing.T) {
		t.Parallel()

		a := withSavings(t)

		res, err := a.ProcessTransaction.H(ctx, pay(domain.NewMoney(150, 0), "groceries", domain.MobileMoney))
		assert.NoError(t, err)
		assert.Equal(t, domain.NewMoney(850, 0), res.Balance)
		assert.Equal(t, "[MobileMoney] Payment of 150.00 tagged 'Groceries' completed.", res.Confirmation)
		assert.Equal(t, domain.TransactionID(1), res.Transaction.ID)
		assert.Equal(t, today, res.Transaction.Date)

		ref, err := ulid.Parse(res.Transaction.Reference)
		assert.NoError(t, err)
		assert.Equal(t, ulid.Timestamp(today), ref.Time())

		tx, err := a.transactions.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, res.Transaction, tx)

		acc, _ := a.accounts.GetByID(ctx, savings)
		assert.Equal(t, domain.NewMoney(850, 0), acc.Balance)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		t.Parallel()

		a := withSavings(t)

		_, err := a.ProcessTransaction.H(ctx, pay(domain.NewMoney(1000, 1), "Rent", domain.BankTransfer))
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		acc, _ := a.accounts.GetByID(ctx, savings)
		assert.Equal(t, domain.NewMoney(1000, 0), acc.Balance)

		c, _ := a.transactions.Count(ctx)
		assert.Equal(t, 0, c)
	})

	t.Run("rejected transaction does not stop the next ones", func(t *testing.T) {
		t.Parallel()

		a := withSavings(t)

		_, err := a.ProcessTransaction.H(ctx, pay(domain.NewMoney(900, 0), "Rent", domain.BankTransfer))
		assert.NoError(t, err)

		_, err = a.ProcessTransaction.H(ctx, pay(domain.NewMoney(300, 0), "Utilities", domain.BankTransfer))
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		res, err := a.ProcessTransaction.H(ctx, pay(domain.NewMoney(100, 0), "Entertainment", domain.CryptoWallet))
		assert.NoError(t, err)
		assert.Equal(t, domain.Money(0), res.Balance)
		assert.Equal(t, domain.TransactionID(2), res.Transaction.ID)
	})

	t.Run("unknown processor", func(t *testing.T) {
		t.Parallel()

		a := withSavings(t)

		_, err := a.ProcessTransaction.H(ctx, pay(domain.NewMoney(10, 0), "Groceries", "paypal"))
		assert.ErrorIs(t, err, domain.ErrUnknownProcessor)

		acc, _ := a.accounts.GetByID(ctx, savings)
		assert.Equal(t, domain.NewMoney(1000, 0), acc.Balance)
	})

	t.Run("unknown account", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t)

		_, err := a.ProcessTransaction.H(ctx, pay(domain.NewMoney(10, 0), "Groceries", domain.BankTransfer))
		assert.ErrorIs(t, err, arepo.ErrNotFound)
	})

	t.Run("invalid amount", func(t *testing.T) {
		t.Parallel()

		a := withSavings(t)

		_, err := a.ProcessTransaction.H(ctx, pay(0, "Groceries", domain.BankTransfer))
		assert.ErrorIs(t, err, app.ErrValidation)
	})

	t.Run("blank category", func(t *testing.T) {
		t.Parallel()

		a := withSavings(t)

		_, err := a.ProcessTransaction.H(ctx, pay(domain.NewMoney(10, 0), "   ", domain.BankTransfer))
		assert.ErrorIs(t, err, app.ErrValidation)

		acc, _ := a.accounts.GetByID(ctx, savings)
		assert.Equal(t, domain.NewMoney(1000, 0), acc.Balance)

		c, _ := a.transactions.Count(ctx)
		assert.Equal(t, 0, c)
	})

	t.Run("refund if the transaction can not be recorded", func(t *testing.T) {
		t.Parallel()

		a := withFailingStores(t, 2)

		_, err := a.ProcessTransaction.H(ctx, pay(domain.NewMoney(150, 0), "Groceries", domain.BankTransfer))
		require.ErrorIs(t, err, errStoreDown)
		assert.ErrorContains(t, err, "could not record transaction")
		assert.NotContains(t, err.Error(), "could not refund")

		acc, _ := a.accounts.GetByID(ctx, savings)
		assert.Equal(t, domain.NewMoney(1000, 0), acc.Balance)
	})

	t.Run("report a failed refund", func(t *testing.T) {
		t.Parallel()

		a := withFailingStores(t, 1)

		_, err := a.ProcessTransaction.H(ctx, pay(domain.NewMoney(150, 0), "Groceries", domain.BankTransfer))
		assert.ErrorContains(t, err, "could not record transaction")
		assert.ErrorContains(t, err, "could not refund 150.00 to ACC-001")

		acc, _ := a.accounts.GetByID(ctx, savings)
		assert.Equal(t, domain.NewMoney(850, 0), acc.Balance, "debit stays, as the refund failed")
	})

	t.Run("current date", func(t *testing.T) {
		t.Parallel()

		a := withSavings(t)

		res, err := a.ProcessTransaction.H(ctx, application.ProcessTransactionRequest{
			Account:   savings,
			Processor: domain.BankTransfer,
			Category:  "Groceries",
			Amount:    domain.NewMoney(10, 0),
		})
		assert.NoError(t, err)
		assert.False(t, res.Transaction.Date.IsZero())
	})
}
