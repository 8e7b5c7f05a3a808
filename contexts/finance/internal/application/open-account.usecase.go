package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

func NewOpenAccountCommandHandler(accounts domain.AccountRepository) app.Command[OpenAccountCommand] {
	return app.NewValidatedCommand[OpenAccountCommand](nil, &openAccountCommandHandler{accounts: accounts})
}

type openAccountCommandHandler struct {
	accounts domain.AccountRepository
}

type OpenAccountCommand struct {
	Number         string             `validate:"required"`
	Kind           domain.AccountKind `validate:"oneof=checking savings"`
	InitialBalance domain.Money       `validate:"gte=0"`
}

func (h *openAccountCommandHandler) H(ctx context.Context, cmd OpenAccountCommand) error {
	acc, err := domain.NewAccount(cmd.Number, cmd.Kind, cmd.InitialBalance)
	if err != nil {
		return fmt.Errorf("could not open account: %w", err)
	}

	if err = h.accounts.Insert(ctx, acc); err != nil {
		return fmt.Errorf("could not open account %s: %w", acc.Number, err)
	}

	return nil
}
