package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

func TestMoney_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		money    domain.Money
		expected string
	}{
		"zero":     {0, "0.00"},
		"cents":    {5, "0.05"},
		"amount":   {domain.NewMoney(150, 0), "150.00"},
		"grouped":  {domain.NewMoney(1250, 75), "1,250.75"},
		"millions": {domain.NewMoney(1000000, 1), "1,000,000.01"},
		"negative": {-domain.NewMoney(20, 50), "-20.50"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.money.String())
		})
	}
}

func TestNormaliseCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Groceries", domain.NormaliseCategory("  groceries "))
	assert.Equal(t, "Health Care", domain.NormaliseCategory("health care"))
}

func TestNewAccount(t *testing.T) {
	t.Parallel()

	acc, err := domain.NewAccount(" ACC-001 ", domain.Savings, domain.NewMoney(1000, 0))
	assert.NoError(t, err)
	assert.Equal(t, "ACC-001", acc.EntityID())

	_, err = domain.NewAccount(" ", domain.Savings, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)

	_, err = domain.NewAccount("ACC-002", "credit", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)
}

func TestAccount_Apply(t *testing.T) {
	t.Parallel()

	rent := domain.Transaction{ID: 1, Amount: domain.NewMoney(900, 0), Category: "Rent"}

	t.Run("checking can be overdrawn", func(t *testing.T) {
		t.Parallel()

		acc := domain.Account{Number: "ACC-002", Kind: domain.Checking, Balance: domain.NewMoney(500, 0)}

		err := acc.Apply(rent)
		assert.NoError(t, err)
		assert.Equal(t, -domain.NewMoney(400, 0), acc.Balance)
	})

	t.Run("savings rejects amounts above the balance", func(t *testing.T) {
		t.Parallel()

		acc := domain.Account{Number: "ACC-001", Kind: domain.Savings, Balance: domain.NewMoney(500, 0)}

		err := acc.Apply(rent)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, domain.NewMoney(500, 0), acc.Balance)
	})

	t.Run("savings can be emptied", func(t *testing.T) {
		t.Parallel()

		acc := domain.Account{Number: "ACC-001", Kind: domain.Savings, Balance: domain.NewMoney(900, 0)}

		err := acc.Apply(rent)
		assert.NoError(t, err)
		assert.Equal(t, domain.Money(0), acc.Balance)
	})
}

func TestNewProcessor(t *testing.T) {
	t.Parallel()

	tx := domain.Transaction{
		ID:       1,
		Date:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:   domain.NewMoney(150, 0),
		Category: "Groceries",
	}

	tests := map[string]string{
		domain.BankTransfer: "[BankTransfer] Processed 150.00 for 'Groceries'.",
		domain.MobileMoney:  "[MobileMoney] Payment of 150.00 tagged 'Groceries' completed.",
		domain.CryptoWallet: "[CryptoWallet] On-chain payment 150.00 categorised as 'Groceries' broadcast.",
	}

	for name, expected := range tests {
		p, err := domain.NewProcessor(name)
		if assert.NoError(t, err) {
			assert.Equal(t, expected, p.Process(tx))
		}
	}

	_, err := domain.NewProcessor("paypal")
	assert.ErrorIs(t, err, domain.ErrUnknownProcessor)
	assert.ErrorContains(t, err, "use one of: bank-transfer, mobile-money, crypto-wallet")
}

func TestCategoryIndex(t *testing.T) {
	t.Parallel()

	txs := []domain.Transaction{
		{ID: 1, Category: "Groceries"},
		{ID: 2, Category: "Utilities"},
		{ID: 3, Category: "Groceries"},
	}

	idx := domain.NewCategoryIndex()
	idx.Build(txs, domain.ByCategory)

	assert.Equal(t, []string{"Groceries", "Utilities"}, idx.Keys())
	assert.Equal(t, []domain.Transaction{txs[0], txs[2]}, idx.GetByKey("Groceries"))
	assert.Empty(t, idx.GetByKey("Rent"))
}
