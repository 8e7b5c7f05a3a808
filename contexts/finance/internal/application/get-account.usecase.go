package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

func NewGetAccountQueryHandler(accounts domain.AccountRepository) app.Query[GetAccountQuery, GetAccountResponse] {
	return &getAccountQueryHandler{accounts: accounts}
}

type getAccountQueryHandler struct {
	accounts domain.AccountRepository
}

type (
	GetAccountQuery struct {
		Number string
	}
	GetAccountResponse struct {
		Account domain.Account `json:"account"`
	}
)

func (h *getAccountQueryHandler) H(ctx context.Context, query GetAccountQuery) (GetAccountResponse, error) {
	acc, err := h.accounts.GetByID(ctx, query.Number)
	if err != nil {
		return GetAccountResponse{}, fmt.Errorf("could not get account: %w", err)
	}

	return GetAccountResponse{Account: acc}, nil
}
