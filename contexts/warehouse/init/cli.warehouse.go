package init

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-arrower/records/cmd"
	"github.com/go-arrower/records/contexts/warehouse/internal/application"
	"github.com/go-arrower/records/contexts/warehouse/internal/domain"
)

// Command returns the `warehouse` command. It lists the stock and
// shows how invalid changes are rejected without corrupting it.
func (wc *WarehouseContext) Command() *cobra.Command {
	return &cobra.Command{
		Use:   contextName,
		Short: "List the stock of the warehouse and change it",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			w := c.OutOrStdout()

			if err := wc.Setup(ctx); err != nil {
				return err
			}

			if err := listItems(c, "Groceries", wc.app.Groceries); err != nil {
				return err
			}

			if err := listItems(c, "Electronics", wc.app.Electronics); err != nil {
				return err
			}

			cmd.Heading(w, "Changes")

			err := wc.app.Electronics.AddItem.H(ctx, application.AddItemCommand[domain.ElectronicItem]{
				Item: domain.ElectronicItem{ID: 1, Name: "Tablet", Quantity: 5, Brand: "Apple", WarrantyMonths: 12}, //nolint:mnd,lll // sample item
			})
			report(w, "add Tablet as #1", err)

			res, err := wc.app.Groceries.RemoveItems.H(ctx, application.RemoveItemsRequest{IDs: []domain.ItemID{999}})
			if err == nil && len(res.NotFound) > 0 {
				err = fmt.Errorf("no grocery item found with id %v", res.NotFound) //nolint:err113 // message for the user
			}
			report(w, "remove grocery #999", err)

			err = wc.app.Electronics.SetQuantity.H(ctx, application.SetQuantityCommand{ID: 2, Quantity: -5}) //nolint:mnd,lll // sample change
			report(w, "set quantity of electronic #2 to -5", err)

			stock, err := wc.app.Groceries.IncreaseStock.H(ctx, application.IncreaseStockRequest{ID: 101, Amount: 10}) //nolint:mnd,lll // sample change
			report(w, "increase stock of grocery #101 by 10", err)

			if err == nil {
				cmd.Item(w, fmt.Sprintf("%s now has %d in stock", stock.Name, stock.Quantity))
			}

			return nil
		},
	}
}

func listItems[T any](c *cobra.Command, heading string, inv application.Inventory[T]) error {
	res, err := inv.ListItems.H(c.Context(), application.ListItemsQuery{})
	if err != nil {
		return fmt.Errorf("could not list %s: %w", heading, err)
	}

	w := c.OutOrStdout()

	cmd.Heading(w, heading)

	for _, item := range res.Items {
		cmd.Item(w, item)
	}

	_, _ = fmt.Fprintln(w)

	return nil
}

// report prints the outcome of a change. A rejected change is expected and does not stop the command.
func report(w io.Writer, change string, err error) {
	if err != nil {
		cmd.Failure(w, fmt.Errorf("%s: %w", change, err))

		return
	}

	cmd.Success(w, change)
}
