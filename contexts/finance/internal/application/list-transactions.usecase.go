package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

func NewListTransactionsQueryHandler(
	transactions domain.TransactionRepository,
) app.Query[ListTransactionsQuery, ListTransactionsResponse] {
	return &listTransactionsQueryHandler{transactions: transactions}
}

type listTransactionsQueryHandler struct {
	transactions domain.TransactionRepository
}

type (
	ListTransactionsQuery    struct{}
	ListTransactionsResponse struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
)

func (h *listTransactionsQueryHandler) H(ctx context.Context, _ ListTransactionsQuery) (ListTransactionsResponse, error) {
	txs, err := h.transactions.GetAll(ctx)
	if err != nil {
		return ListTransactionsResponse{}, fmt.Errorf("could not list transactions: %w", err)
	}

	return ListTransactionsResponse{Transactions: txs}, nil
}
