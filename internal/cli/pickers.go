package cli

import (
	"context"

	"github.com/vaultops/syspass-cli/internal/models"
)

const createNewOption = "Create a new one"

// pickClient lets the user choose an existing client or create a new one
// on the spot. globalFlag carries the --global value, -1 when unset.
func (a *App) pickClient(ctx context.Context, globalFlag int) (int, error) {
	clients, err := a.client.Clients(ctx)
	if err != nil {
		return 0, err
	}

	options := make([]string, 0, len(clients)+1)
	for _, client := range clients {
		options = append(options, client.String())
	}
	options = append(options, createNewOption)

	index, err := a.ask.Select("Select the right client:", options)
	if err != nil {
		return 0, err
	}
	if index < len(clients) {
		return clients[index].ID, nil
	}

	name, err := a.ask.Text("Name:", "", true)
	if err != nil {
		return 0, err
	}
	description, err := a.ask.Text("Description:", "", false)
	if err != nil {
		return 0, err
	}

	isGlobal := 0
	if globalFlag >= 0 {
		isGlobal = globalFlag
	} else {
		global, err := a.ask.Confirm("Global:")
		if err != nil {
			return 0, err
		}
		if global {
			isGlobal = 1
		}
	}

	saved, err := a.client.SaveClient(ctx, &models.Client{
		Name:        name,
		Description: description,
		IsGlobal:    isGlobal,
	})
	if err != nil {
		return 0, err
	}
	a.successf("Client %s (%d) saved", green(saved.Name), saved.ID)
	return saved.ID, nil
}

// pickCategory lets the user choose an existing category or create a new
// one on the spot.
func (a *App) pickCategory(ctx context.Context) (int, error) {
	categories, err := a.client.Categories(ctx)
	if err != nil {
		return 0, err
	}

	options := make([]string, 0, len(categories)+1)
	for _, category := range categories {
		options = append(options, category.String())
	}
	options = append(options, createNewOption)

	index, err := a.ask.Select("Select the right category:", options)
	if err != nil {
		return 0, err
	}
	if index < len(categories) {
		return categories[index].ID, nil
	}

	name, err := a.ask.Text("Name:", "", true)
	if err != nil {
		return 0, err
	}
	description, err := a.ask.Text("Description:", "", false)
	if err != nil {
		return 0, err
	}

	saved, err := a.client.SaveCategory(ctx, &models.Category{Name: name, Description: description})
	if err != nil {
		return 0, err
	}
	a.successf("Category %s (%d) saved", green(saved.Name), saved.ID)
	return saved.ID, nil
}
