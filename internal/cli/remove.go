package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

func newRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"delete"},
		Short:   "Remove an account, client or category",
	}
	cmd.AddCommand(
		newRemoveAccountCmd(app),
		newRemoveClientCmd(app),
		newRemoveCategoryCmd(app),
	)
	return cmd
}

func newRemoveAccountCmd(app *App) *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"password", "pass"},
		Short:   "Remove an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id <= 0 {
				return errors.New("account id is required")
			}
			return app.remove(cmd.Context(), "Account", id, app.client.DeleteAccount)
		},
	}
	cmd.Flags().IntVarP(&id, "id", "i", 0, "Account id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newRemoveClientCmd(app *App) *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Remove a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				picked, err := app.pickExistingClient(cmd.Context())
				if err != nil {
					return err
				}
				id = picked
			}
			return app.remove(cmd.Context(), "Client", id, app.client.DeleteClient)
		},
	}
	cmd.Flags().IntVarP(&id, "id", "i", 0, "Client id")
	return cmd
}

func newRemoveCategoryCmd(app *App) *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Remove a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				picked, err := app.pickExistingCategory(cmd.Context())
				if err != nil {
					return err
				}
				id = picked
			}
			return app.remove(cmd.Context(), "Category", id, app.client.DeleteCategory)
		},
	}
	cmd.Flags().IntVarP(&id, "id", "i", 0, "Category id")
	return cmd
}

func (a *App) remove(ctx context.Context, kind string, id int, del func(context.Context, int) (bool, error)) error {
	ok, err := del(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		a.failf("Failed to remove %s %d", kind, id)
		return nil
	}
	a.successf("%s removed", kind)
	return nil
}
