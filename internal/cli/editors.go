package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/vaultops/syspass-cli/internal/models"
)

func newNewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new",
		Aliases: []string{"add"},
		Short:   "Add a new account, client or category",
	}
	cmd.AddCommand(
		newNewAccountCmd(app),
		newClientEditorCmd(app, true),
		newCategoryEditorCmd(app, true),
	)
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit an account password, client or category",
	}
	cmd.AddCommand(
		newChangePasswordCmd(app),
		newClientEditorCmd(app, false),
		newCategoryEditorCmd(app, false),
	)
	return cmd
}

type accountOptions struct {
	name     string
	login    string
	url      string
	note     string
	password string
	client   int
	category int
	global   int
}

func newNewAccountCmd(app *App) *cobra.Command {
	opts := &accountOptions{}
	cmd := &cobra.Command{
		Use:     "password",
		Aliases: []string{"account", "pass"},
		Short:   "Add a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.createAccount(cmd.Context(), opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.name, "name", "n", "", "Account name")
	fs.StringVarP(&opts.login, "login", "l", "", "Username")
	fs.StringVarP(&opts.url, "url", "u", "", "Url for the site")
	fs.StringVarP(&opts.note, "note", "o", "", "Notes text")
	fs.StringVarP(&opts.password, "password", "p", "", "Password")
	fs.IntVarP(&opts.client, "client", "i", 0, "Client id")
	fs.IntVarP(&opts.category, "category", "a", 0, "Category id")
	fs.IntVarP(&opts.global, "global", "g", -1, "Should a newly created client be global (0 or 1)")
	return cmd
}

func (a *App) createAccount(ctx context.Context, opts *accountOptions) error {
	name, err := a.flagOrPrompt(opts.name, "Name:", "", true)
	if err != nil {
		return err
	}
	login, err := a.flagOrPrompt(opts.login, "Username:", "", false)
	if err != nil {
		return err
	}
	url, err := a.flagOrPrompt(opts.url, "Url:", "", false)
	if err != nil {
		return err
	}
	notes, err := a.flagOrPrompt(opts.note, "Notes:", "", false)
	if err != nil {
		return err
	}

	categoryID := opts.category
	if categoryID == 0 {
		if categoryID, err = a.pickCategory(ctx); err != nil {
			return err
		}
	}
	clientID := opts.client
	if clientID == 0 {
		if clientID, err = a.pickClient(ctx, opts.global); err != nil {
			return err
		}
	}

	password := opts.password
	if password == "" {
		if password, err = a.pickPassword("Password:"); err != nil {
			return err
		}
	}

	saved, err := a.client.SaveAccount(ctx, &models.Account{
		Name:       name,
		Login:      login,
		URL:        url,
		Notes:      notes,
		CategoryID: categoryID,
		ClientID:   clientID,
		Pass:       password,
	})
	if err != nil {
		return err
	}

	a.successf("Account %s (%d) saved", green(saved.Name), saved.ID)
	return nil
}

type clientOptions struct {
	id          int
	name        string
	description string
	global      int
}

func newClientEditorCmd(app *App, isNew bool) *cobra.Command {
	opts := &clientOptions{}
	short := "Edit a client"
	if isNew {
		short = "Add a new client"
	}
	cmd := &cobra.Command{
		Use:   "client",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.editClient(cmd.Context(), opts, isNew)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.name, "name", "n", "", "Client name")
	fs.StringVarP(&opts.description, "description", "e", "", "Client description")
	fs.IntVarP(&opts.global, "global", "g", -1, "Should the client be global (0 or 1)")
	if !isNew {
		fs.IntVarP(&opts.id, "id", "i", 0, "Client id")
	}
	return cmd
}

func (a *App) editClient(ctx context.Context, opts *clientOptions, isNew bool) error {
	var current models.Client
	if !isNew {
		id := opts.id
		if id == 0 {
			picked, err := a.pickExistingClient(ctx)
			if err != nil {
				return err
			}
			id = picked
		}
		existing, err := a.client.GetClient(ctx, id)
		if err != nil {
			return err
		}
		current = *existing
	}

	name, err := a.flagOrPrompt(opts.name, "Name:", current.Name, true)
	if err != nil {
		return err
	}
	description, err := a.flagOrPrompt(opts.description, "Description:", current.Description, false)
	if err != nil {
		return err
	}
	current.Name = name
	current.Description = description
	if opts.global >= 0 {
		current.IsGlobal = opts.global
	}

	saved, err := a.client.SaveClient(ctx, &current)
	if err != nil {
		return err
	}
	a.successf("Client %s (%d) saved", green(saved.Name), saved.ID)
	return nil
}

// pickExistingClient asks for one of the existing clients, without the
// create-new escape hatch.
func (a *App) pickExistingClient(ctx context.Context) (int, error) {
	clients, err := a.client.Clients(ctx)
	if err != nil {
		return 0, err
	}
	if len(clients) == 0 {
		return 0, errors.New("no clients to edit")
	}
	options := make([]string, 0, len(clients))
	for _, client := range clients {
		options = append(options, client.String())
	}
	index, err := a.ask.Select("Select the right client:", options)
	if err != nil {
		return 0, err
	}
	return clients[index].ID, nil
}

type categoryOptions struct {
	id          int
	name        string
	description string
}

func newCategoryEditorCmd(app *App, isNew bool) *cobra.Command {
	opts := &categoryOptions{}
	short := "Edit a category"
	if isNew {
		short = "Add a new category"
	}
	cmd := &cobra.Command{
		Use:   "category",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.editCategory(cmd.Context(), opts, isNew)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.name, "name", "n", "", "Category name")
	fs.StringVarP(&opts.description, "description", "e", "", "Category description")
	if !isNew {
		fs.IntVarP(&opts.id, "id", "i", 0, "Category id")
	}
	return cmd
}

func (a *App) editCategory(ctx context.Context, opts *categoryOptions, isNew bool) error {
	var current models.Category
	if !isNew {
		id := opts.id
		if id == 0 {
			picked, err := a.pickExistingCategory(ctx)
			if err != nil {
				return err
			}
			id = picked
		}
		existing, err := a.client.GetCategory(ctx, id)
		if err != nil {
			return err
		}
		current = *existing
	}

	name, err := a.flagOrPrompt(opts.name, "Name:", current.Name, true)
	if err != nil {
		return err
	}
	description, err := a.flagOrPrompt(opts.description, "Description:", current.Description, false)
	if err != nil {
		return err
	}
	current.Name = name
	current.Description = description

	saved, err := a.client.SaveCategory(ctx, &current)
	if err != nil {
		return err
	}
	a.successf("Category %s (%d) saved", green(saved.Name), saved.ID)
	return nil
}

func (a *App) pickExistingCategory(ctx context.Context) (int, error) {
	categories, err := a.client.Categories(ctx)
	if err != nil {
		return 0, err
	}
	if len(categories) == 0 {
		return 0, errors.New("no categories to edit")
	}
	options := make([]string, 0, len(categories))
	for _, category := range categories {
		options = append(options, category.String())
	}
	index, err := a.ask.Select("Select the right category:", options)
	if err != nil {
		return 0, err
	}
	return categories[index].ID, nil
}

// flagOrPrompt keeps a flag value when given and asks otherwise.
func (a *App) flagOrPrompt(flagValue, message, defaultValue string, required bool) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return a.ask.Text(message, defaultValue, required)
}
