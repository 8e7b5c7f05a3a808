package init

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/go-arrower/records/alog"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/cmd"
	"github.com/go-arrower/records/contexts/finance/internal/application"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

const sampleAccount = "ACC-001"

// Command returns the `finance` command. It pays sample transactions from a savings account
// with different processors. A transaction above the balance is rejected and the others continue.
func (fc *FinanceContext) Command() *cobra.Command {
	return &cobra.Command{
		Use:   contextName,
		Short: "Process sample transactions and summarise the spending",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			w := c.OutOrStdout()

			acc, err := fc.app.GetAccount.H(ctx, application.GetAccountQuery{Number: sampleAccount})
			if errors.Is(err, arepo.ErrNotFound) {
				err = fc.app.OpenAccount.H(ctx, application.OpenAccountCommand{
					Number:         sampleAccount,
					Kind:           domain.Savings,
					InitialBalance: domain.NewMoney(1000, 0), //nolint:mnd // sample balance
				})
				if err != nil {
					return err //nolint:wrapcheck // message is already meant for the user
				}

				acc, err = fc.app.GetAccount.H(ctx, application.GetAccountQuery{Number: sampleAccount})
			}

			if err != nil {
				return err //nolint:wrapcheck // message is already meant for the user
			}

			cmd.Heading(w, fmt.Sprintf("Account %s (%s) with balance %s", acc.Account.Number, acc.Account.Kind, acc.Account.Balance))

			for _, req := range []application.ProcessTransactionRequest{
				{Account: sampleAccount, Processor: domain.MobileMoney, Category: "Groceries", Amount: domain.NewMoney(150, 0)},
				{Account: sampleAccount, Processor: domain.BankTransfer, Category: "Utilities", Amount: domain.NewMoney(300, 0)},
				{Account: sampleAccount, Processor: domain.CryptoWallet, Category: "Entertainment", Amount: domain.NewMoney(120, 0)},
				{Account: sampleAccount, Processor: domain.BankTransfer, Category: "Rent", Amount: domain.NewMoney(900, 0)},
			} {
				res, err := fc.app.ProcessTransaction.H(ctx, req)
				if errors.Is(err, domain.ErrInsufficientFunds) {
					fc.logger.LogAttrs(ctx, slog.LevelWarn, "transaction rejected",
						slog.String("account", req.Account),
						slog.String("category", req.Category),
						alog.Error(err),
					)
					cmd.Failure(w, err)

					continue
				}

				if err != nil {
					return err //nolint:wrapcheck // message is already meant for the user
				}

				cmd.Item(w, res.Confirmation)
				cmd.Item(w, "new balance: "+res.Balance.String())
			}

			_, _ = fmt.Fprintln(w)

			spending, err := fc.app.SpendingByCategory.H(ctx, application.SpendingByCategoryQuery{})
			if err != nil {
				return err //nolint:wrapcheck // message is already meant for the user
			}

			cmd.Heading(w, "Spending by category")

			for _, s := range spending.Categories {
				cmd.Item(w, fmt.Sprintf("%s: %s in %d transactions", s.Category, s.Total, s.Transactions))
			}

			acc, err = fc.app.GetAccount.H(ctx, application.GetAccountQuery{Number: sampleAccount})
			if err != nil {
				return err //nolint:wrapcheck // message is already meant for the user
			}

			_, _ = fmt.Fprintln(w)
			cmd.Success(w, "final balance: "+acc.Account.Balance.String())

			return nil
		},
	}
}
