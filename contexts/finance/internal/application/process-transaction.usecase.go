package application

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

func NewProcessTransactionRequestHandler(
	accounts domain.AccountRepository,
	transactions domain.TransactionRepository,
) app.Request[ProcessTransactionRequest, ProcessTransactionResponse] {
	return app.NewValidatedRequest[ProcessTransactionRequest, ProcessTransactionResponse](
		nil,
		&processTransactionRequestHandler{
			accounts:     accounts,
			transactions: transactions,
			entropy:      &ulid.LockedMonotonicReader{MonotonicReader: ulid.Monotonic(rand.Reader, 0)},
		},
	)
}

type processTransactionRequestHandler struct {
	accounts     domain.AccountRepository
	transactions domain.TransactionRepository

	entropy *ulid.LockedMonotonicReader
}

type (
	// ProcessTransactionRequest pays Amount from Account with the given Processor.
	// Date defaults to the current time.
	ProcessTransactionRequest struct {
		Date      time.Time    `json:"date"`
		Account   string       `json:"account"   validate:"required"`
		Processor string       `json:"processor" validate:"required"`
		Category  string       `json:"category"  validate:"required"`
		Amount    domain.Money `json:"amount"    validate:"gt=0"`
	}
	ProcessTransactionResponse struct {
		Transaction  domain.Transaction `json:"transaction"`
		Confirmation string             `json:"confirmation"`
		Balance      domain.Money       `json:"balance"`
	}
)

// H records the transaction only, if the account accepted it.
// A rejected transaction returns domain.ErrInsufficientFunds, leaves the balance unchanged
// and does not use up a transaction id.
func (h *processTransactionRequestHandler) H(
	ctx context.Context,
	req ProcessTransactionRequest,
) (ProcessTransactionResponse, error) {
	processor, err := domain.NewProcessor(req.Processor)
	if err != nil {
		return ProcessTransactionResponse{}, fmt.Errorf("could not process transaction: %w", err)
	}

	category := domain.NormaliseCategory(req.Category)
	if category == "" {
		return ProcessTransactionResponse{}, fmt.Errorf("%w: category is blank", app.ErrValidation)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	tx := domain.Transaction{
		Date:      date,
		Amount:    req.Amount,
		Category:  category,
		Account:   req.Account,
		Processor: req.Processor,
	}

	var balance domain.Money

	err = h.accounts.UpdateField(ctx, req.Account, func(acc *domain.Account) error {
		if err := acc.Apply(tx); err != nil {
			return err
		}

		balance = acc.Balance

		return nil
	})
	if err != nil {
		return ProcessTransactionResponse{}, fmt.Errorf("could not process transaction: %w", err)
	}

	if err = h.record(ctx, &tx); err != nil {
		return ProcessTransactionResponse{}, errors.Join(
			fmt.Errorf("could not record transaction: %w", err),
			h.refund(ctx, tx),
		)
	}

	return ProcessTransactionResponse{
		Transaction:  tx,
		Confirmation: processor.Process(tx),
		Balance:      balance,
	}, nil
}

// record assigns the id and reference of an accepted transaction and stores it.
func (h *processTransactionRequestHandler) record(ctx context.Context, tx *domain.Transaction) error {
	id, err := h.transactions.NextID(ctx)
	if err != nil {
		return err //nolint:wrapcheck // wrapped by the caller
	}

	reference, err := ulid.New(ulid.Timestamp(tx.Date), h.entropy)
	if err != nil {
		return err //nolint:wrapcheck // wrapped by the caller
	}

	tx.ID = id
	tx.Reference = reference.String()

	return h.transactions.Insert(ctx, *tx) //nolint:wrapcheck // wrapped by the caller
}

// refund reverts the debit of a transaction that could not be recorded.
func (h *processTransactionRequestHandler) refund(ctx context.Context, tx domain.Transaction) error {
	err := h.accounts.UpdateField(ctx, tx.Account, func(acc *domain.Account) error {
		acc.Balance += tx.Amount

		return nil
	})
	if err != nil {
		return fmt.Errorf("could not refund %s to %s: %w", tx.Amount, tx.Account, err)
	}

	return nil
}
