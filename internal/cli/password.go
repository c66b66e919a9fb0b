package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultops/syspass-cli/internal/models"
	"github.com/vaultops/syspass-cli/internal/passgen"
	"github.com/vaultops/syspass-cli/internal/prompt"
)

type changePasswordOptions struct {
	id         int
	password   string
	expiration string
}

func newChangePasswordCmd(app *App) *cobra.Command {
	opts := &changePasswordOptions{}
	cmd := &cobra.Command{
		Use:     "password",
		Aliases: []string{"account", "pass"},
		Short:   "Change an account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.changeAccountPassword(cmd.Context(), opts)
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&opts.id, "id", "i", 0, "Account id")
	fs.StringVarP(&opts.password, "password", "p", "", "New password")
	fs.StringVarP(&opts.expiration, "expiration", "e", "", "Expiration YYYY-mm-dd")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *App) changeAccountPassword(ctx context.Context, opts *changePasswordOptions) error {
	if opts.id <= 0 {
		return errors.New("account id is required")
	}

	password := opts.password
	if password == "" {
		var err error
		if password, err = a.pickPassword("New password:"); err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password can't be empty")
	}

	expiration := opts.expiration
	if expiration == "" && !a.quiet {
		var err error
		expiration, err = a.ask.Date("Expiration date:", prompt.DefaultExpiry(time.Now()))
		if err != nil {
			return err
		}
	}
	expireDate, err := prompt.ExpiryEpoch(expiration)
	if err != nil {
		return err
	}

	account, err := a.client.ChangePassword(ctx, &models.ChangePassword{
		ID:         opts.id,
		Pass:       password,
		ExpireDate: expireDate,
	})
	if err != nil {
		return err
	}

	a.successf("Password changed for account %s", green(account.String()))
	return nil
}

// pickPassword offers generated candidates and the use-own escape hatch.
func (a *App) pickPassword(message string) (string, error) {
	if a.quiet {
		return "", prompt.ErrQuiet
	}

	suggestions, err := passgen.Suggestions()
	if err != nil {
		return "", err
	}

	options := make([]string, 0, len(suggestions)+1)
	options = append(options, "use own")
	for _, suggestion := range suggestions {
		options = append(options, fmt.Sprintf("%-25s (%s)", suggestion.Password, suggestion.Label()))
	}

	index, err := a.ask.Select(message, options)
	if err != nil {
		return "", err
	}
	if index == 0 {
		return a.ask.Password(message, true)
	}
	return suggestions[index-1].Password, nil
}
