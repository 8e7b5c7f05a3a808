package init

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/cmd"
	"github.com/go-arrower/records/contexts/inventory/internal/application"
)

// Command returns the `inventory` command. It logs the sample items in one session
// and lists them from a second session, that only knows the persisted data.
func (ic *InventoryContext) Command() *cobra.Command {
	var dir string

	command := &cobra.Command{
		Use:   contextName,
		Short: "Save the inventory log and load it in a new session",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			w := c.OutOrStdout()

			// without a persistent store configured a new session would start empty
			store := ic.di.Store
			if store == arepo.NoopStore {
				jsonStore, err := arepo.NewJSONStore(dir)
				if err != nil {
					return fmt.Errorf("could not open inventory log: %w", err)
				}

				store = jsonStore
			}

			first, err := ic.newSession(ctx, store)
			if err != nil {
				return fmt.Errorf("could not open inventory log: %w", err)
			}

			if err = first.SeedData.H(ctx, application.SeedDataCommand{}); err != nil {
				return fmt.Errorf("could not seed inventory log: %w", err)
			}

			cmd.Success(w, "inventory log saved")
			_, _ = fmt.Fprintln(w)

			second, err := ic.newSession(ctx, store)
			if err != nil {
				return fmt.Errorf("could not open inventory log: %w", err)
			}

			res, err := second.ListItems.H(ctx, application.ListItemsQuery{})
			if err != nil {
				return fmt.Errorf("could not list inventory log: %w", err)
			}

			cmd.Heading(w, "Items loaded in a new session")

			for _, item := range res.Items {
				cmd.Item(w, item)
			}

			return nil
		},
	}

	command.Flags().StringVar(&dir, "dir", ic.di.Config.Store.Dir, "directory of the inventory log, if no store is configured")

	return command
}
