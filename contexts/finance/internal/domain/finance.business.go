package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-arrower/records/aindex"
	"github.com/go-arrower/records/arepo"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownProcessor  = errors.New("unknown processor")
	ErrInvalidAccount    = errors.New("invalid account")
)

type TransactionID int

type Transaction struct {
	ID        TransactionID `json:"id"`
	Date      time.Time     `json:"date"`
	Amount    Money         `json:"amount"    validate:"gt=0"`
	Category  string        `json:"category"  validate:"required"`
	Account   string        `json:"account"   validate:"required"`
	Processor string        `json:"processor"`
	Reference string        `json:"reference"`
}

func (t Transaction) EntityID() TransactionID { return t.ID }

func (t Transaction) String() string {
	return fmt.Sprintf("#%d %s %s via %s, %s", t.ID, t.Amount, t.Category, t.Processor, t.Date.Format(time.DateOnly))
}

// NormaliseCategory trims and title cases a category, so `groceries ` and `Groceries` are grouped together.
func NormaliseCategory(category string) string {
	return cases.Title(language.English).String(strings.TrimSpace(category))
}

type AccountKind string

const (
	// Checking accounts apply every transaction, the balance can become negative.
	Checking AccountKind = "checking"
	// Savings accounts reject transactions above their balance.
	Savings AccountKind = "savings"
)

type Account struct {
	Number  string      `json:"number"  validate:"required"`
	Kind    AccountKind `json:"kind"    validate:"oneof=checking savings"`
	Balance Money       `json:"balance"`
}

func NewAccount(number string, kind AccountKind, balance Money) (Account, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Account{}, fmt.Errorf("%w: account number is required", ErrInvalidAccount)
	}

	if kind != Checking && kind != Savings {
		return Account{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidAccount, kind)
	}

	return Account{Number: number, Kind: kind, Balance: balance}, nil
}

func (a Account) EntityID() string { return a.Number }

// Apply deducts the amount of t from the balance.
func (a *Account) Apply(t Transaction) error {
	if a.Kind == Savings && t.Amount > a.Balance {
		return fmt.Errorf("%w: %s needs %s, balance is %s", ErrInsufficientFunds, a.Number, t.Amount, a.Balance)
	}

	a.Balance -= t.Amount

	return nil
}

type (
	TransactionRepository = arepo.Repository[Transaction, TransactionID]
	AccountRepository     = arepo.Repository[Account, string]

	// CategoryIndex groups transactions by their category.
	CategoryIndex = aindex.GroupIndex[string, Transaction]
)

func NewCategoryIndex() *CategoryIndex {
	return aindex.New[string, Transaction]()
}

// ByCategory is the key of the CategoryIndex.
func ByCategory(t Transaction) string {
	return t.Category
}
