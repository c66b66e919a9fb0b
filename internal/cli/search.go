package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vaultops/syspass-cli/internal/api"
	"github.com/vaultops/syspass-cli/internal/clipboard"
	"github.com/vaultops/syspass-cli/internal/models"
)

type searchOptions struct {
	id           int
	category     int
	showPassword bool
	noShell      bool
	disableUsage bool
	clear        bool
}

func newSearchCmd(app *App) *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:     "search [name]",
		Aliases: []string{"find"},
		Short:   "Search for an account password",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return app.runSearch(cmd.Context(), name, opts)
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&opts.id, "id", "i", 0, "Account id")
	fs.IntVarP(&opts.category, "category", "a", 0, "Category id")
	fs.BoolVarP(&opts.showPassword, "show-password", "p", false, "Show the password as plain text instead of copying it")
	fs.BoolVarP(&opts.noShell, "no-shell", "s", false, "Do not open a shell when the url starts with ssh://")
	fs.BoolVarP(&opts.disableUsage, "disable-usage", "u", false, "Do not rank results by usage and do not record the selection")
	fs.BoolVar(&opts.clear, "clear", false, "Clear the clipboard after the configured timeout")
	_ = fs.MarkHidden("clear")
	return cmd
}

// Seams for side effects that are unpleasant in tests.
var (
	copyPassword = clipboard.Copy

	// spawnClear starts a detached copy of this binary whose only job is
	// to clear the clipboard after the configured timeout.
	spawnClear = func() error {
		exe, err := os.Executable()
		if err != nil {
			return err
		}
		return exec.Command(exe, "search", "--clear").Start()
	}

	// openShell runs ssh against an account whose url is ssh://host.
	openShell = func(account models.Account) error {
		host := account.Login + "@" + strings.ReplaceAll(account.URL, "ssh://", "")
		cmd := exec.Command("ssh", host)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
)

func (a *App) runSearch(ctx context.Context, name string, opts *searchOptions) error {
	if opts.clear {
		return clipboard.ClearAfter(a.cfg.PasswordTimeout)
	}

	accounts, err := a.findAccounts(ctx, name, opts)
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		return errors.New("no account found")
	}
	if len(accounts) > 1 && a.quiet {
		return fmt.Errorf("%d accounts matched", len(accounts))
	}

	account := &accounts[0]
	if len(accounts) > 1 {
		account, err = a.selectAccount(accounts)
		if err != nil {
			return err
		}
		if !opts.disableUsage {
			if err := a.usage.Record(account.ID); err != nil {
				a.log.Warn(ctx, "recording usage failed", "id", account.ID, "error", err)
			}
		}
	}

	view, err := a.client.AccountPassword(ctx, account)
	if err != nil {
		return err
	}

	if !opts.showPassword {
		if err := copyPassword(view.Password); err != nil {
			return fmt.Errorf("copy password to clipboard: %w", err)
		}
		if a.cfg.PasswordTimeout > 0 {
			if err := spawnClear(); err != nil {
				a.log.Warn(ctx, "starting clipboard clear failed", "error", err)
			}
		}
	}

	renderAccount(a.out, view, opts.showPassword)

	if !opts.noShell && strings.Contains(view.Account.URL, "ssh://") {
		return openShell(view.Account)
	}
	return nil
}

func (a *App) findAccounts(ctx context.Context, name string, opts *searchOptions) ([]models.Account, error) {
	if opts.id > 0 {
		account, err := a.client.ViewAccount(ctx, opts.id)
		if err != nil {
			return nil, err
		}
		return []models.Account{*account}, nil
	}

	if name == "" {
		return nil, errors.New("name or id is required")
	}

	search := []api.Param{{Key: "text", Value: name}}
	if opts.category > 0 {
		search = append(search, api.Param{Key: "categoryId", Value: strconv.Itoa(opts.category)})
	}
	return a.client.SearchAccount(ctx, search, !opts.disableUsage)
}

func (a *App) selectAccount(accounts []models.Account) (*models.Account, error) {
	options := make([]string, 0, len(accounts))
	for _, account := range accounts {
		options = append(options, account.String())
	}
	index, err := a.ask.Select("Select the right account:", options)
	if err != nil {
		return nil, err
	}
	return &accounts[index], nil
}

// renderAccount prints the account table. The password cell either shows
// the plain password or the copied-to-clipboard notice.
func renderAccount(w io.Writer, view *models.ViewPassword, show bool) {
	fmt.Fprintln(w, green(view.Account.Name))
	if view.Account.ClientName != "" {
		fmt.Fprintln(w, green(view.Account.ClientName))
	}

	passCell := "✔ Copied to clipboard ✔"
	if show {
		passCell = view.Password
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Id", "Username", "Password", "Address"})
	table.Append([]string{
		strconv.Itoa(view.Account.ID),
		view.Account.Login,
		passCell,
		view.Account.URL,
	})
	table.Render()
}
