package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

func NewSpendingByCategoryQueryHandler(
	transactions domain.TransactionRepository,
	index *domain.CategoryIndex,
) app.Query[SpendingByCategoryQuery, SpendingByCategoryResponse] {
	return &spendingByCategoryQueryHandler{transactions: transactions, index: index}
}

type spendingByCategoryQueryHandler struct {
	transactions domain.TransactionRepository
	index        *domain.CategoryIndex
}

type (
	SpendingByCategoryQuery    struct{}
	SpendingByCategoryResponse struct {
		Categories []CategorySpending `json:"categories"`
		Total      domain.Money       `json:"total"`
	}
	CategorySpending struct {
		Category     string       `json:"category"`
		Transactions int          `json:"transactions"`
		Total        domain.Money `json:"total"`
	}
)

// H rebuilds the category index from all recorded transactions.
// Categories are listed in the order they were first spent on.
func (h *spendingByCategoryQueryHandler) H(
	ctx context.Context,
	_ SpendingByCategoryQuery,
) (SpendingByCategoryResponse, error) {
	if err := h.index.BuildFrom(ctx, h.transactions, domain.ByCategory); err != nil {
		return SpendingByCategoryResponse{}, fmt.Errorf("could not summarise spending: %w", err)
	}

	res := SpendingByCategoryResponse{Categories: []CategorySpending{}}

	for _, category := range h.index.Keys() {
		spending := CategorySpending{Category: category}

		for _, tx := range h.index.GetByKey(category) {
			spending.Transactions++
			spending.Total += tx.Amount
		}

		res.Categories = append(res.Categories, spending)
		res.Total += spending.Total
	}

	return res, nil
}
