package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultops/syspass-cli/internal/models"
)

func TestCreateAccountFromFlags(t *testing.T) {
	h := newTestApp(t)

	var saved *models.Account
	h.client.saveAccountFn = func(_ context.Context, account *models.Account) (*models.Account, error) {
		saved = account
		result := *account
		result.ID = 99
		return &result, nil
	}

	err := h.app.createAccount(context.Background(), &accountOptions{
		name:     "mail",
		login:    "root",
		url:      "https://example.org",
		note:     "imap",
		password: "pw",
		client:   5,
		category: 4,
		global:   -1,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Zero(t, saved.ID, "new accounts are submitted without an id")
	assert.Equal(t, "mail", saved.Name)
	assert.Equal(t, 4, saved.CategoryID)
	assert.Equal(t, 5, saved.ClientID)
	assert.Equal(t, "pw", saved.Pass)
	assert.Contains(t, h.out.String(), "Account mail (99) saved")
}

func TestCreateAccountPicksClientAndCategory(t *testing.T) {
	h := newTestApp(t)

	h.client.categoriesFn = func(context.Context) ([]models.Category, error) {
		return []models.Category{{ID: 4, Name: "Mail"}}, nil
	}
	h.client.clientsFn = func(context.Context) ([]models.Client, error) {
		return []models.Client{{ID: 5, Name: "Acme"}}, nil
	}
	h.client.saveAccountFn = func(_ context.Context, account *models.Account) (*models.Account, error) {
		assert.Equal(t, 4, account.CategoryID)
		assert.Equal(t, 5, account.ClientID)
		result := *account
		result.ID = 1
		return &result, nil
	}

	// Category picker, then client picker.
	h.ask.selects = []int{0, 0}

	err := h.app.createAccount(context.Background(), &accountOptions{
		name:     "mail",
		login:    "root",
		url:      "u",
		note:     "n",
		password: "pw",
		global:   -1,
	})
	require.NoError(t, err)
}

func TestCreateAccountNewClientOnTheFly(t *testing.T) {
	h := newTestApp(t)

	h.client.clientsFn = func(context.Context) ([]models.Client, error) {
		return []models.Client{{ID: 5, Name: "Acme"}}, nil
	}
	h.client.saveClientFn = func(_ context.Context, client *models.Client) (*models.Client, error) {
		assert.Zero(t, client.ID)
		assert.Equal(t, "NewCo", client.Name)
		assert.Equal(t, 1, client.IsGlobal)
		result := *client
		result.ID = 6
		return &result, nil
	}
	h.client.saveAccountFn = func(_ context.Context, account *models.Account) (*models.Account, error) {
		assert.Equal(t, 6, account.ClientID)
		result := *account
		result.ID = 1
		return &result, nil
	}

	// Last option in the client picker is "create new".
	h.ask.selects = []int{1}
	h.ask.texts = []string{"NewCo", "consulting"}
	h.ask.confirms = []bool{true}

	err := h.app.createAccount(context.Background(), &accountOptions{
		name:     "mail",
		login:    "root",
		url:      "u",
		note:     "n",
		password: "pw",
		category: 4,
		global:   -1,
	})
	require.NoError(t, err)
}

func TestEditClientDefaultsFromServer(t *testing.T) {
	h := newTestApp(t)

	h.client.getClientFn = func(_ context.Context, id int) (*models.Client, error) {
		assert.Equal(t, 7, id)
		return &models.Client{ID: 7, Name: "Old", Description: "old desc", IsGlobal: 1}, nil
	}
	var saved *models.Client
	h.client.saveClientFn = func(_ context.Context, client *models.Client) (*models.Client, error) {
		saved = client
		return client, nil
	}

	// Empty answers keep the server-side defaults.
	h.ask.texts = []string{"Renamed", ""}

	err := h.app.editClient(context.Background(), &clientOptions{id: 7, global: -1}, false)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 7, saved.ID)
	assert.Equal(t, "Renamed", saved.Name)
	assert.Equal(t, "old desc", saved.Description)
	assert.Equal(t, 1, saved.IsGlobal, "global flag untouched when not set")
}

func TestEditClientNewSkipsFetch(t *testing.T) {
	h := newTestApp(t)

	h.client.saveClientFn = func(_ context.Context, client *models.Client) (*models.Client, error) {
		assert.Zero(t, client.ID)
		result := *client
		result.ID = 8
		return &result, nil
	}

	err := h.app.editClient(context.Background(), &clientOptions{
		name:        "NewCo",
		description: "d",
		global:      1,
	}, true)

	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Client NewCo (8) saved")
}

func TestEditCategoryPickerWhenNoID(t *testing.T) {
	h := newTestApp(t)

	h.client.categoriesFn = func(context.Context) ([]models.Category, error) {
		return []models.Category{{ID: 4, Name: "Mail"}, {ID: 9, Name: "Web"}}, nil
	}
	h.client.getCategoryFn = func(_ context.Context, id int) (*models.Category, error) {
		assert.Equal(t, 9, id)
		return &models.Category{ID: 9, Name: "Web", Description: "sites"}, nil
	}
	h.client.saveCategoryFn = func(_ context.Context, category *models.Category) (*models.Category, error) {
		assert.Equal(t, 9, category.ID)
		return category, nil
	}

	h.ask.selects = []int{1}
	h.ask.texts = []string{"Websites", ""}

	err := h.app.editCategory(context.Background(), &categoryOptions{}, false)
	require.NoError(t, err)
}

func TestFlagOrPromptPrefersFlag(t *testing.T) {
	h := newTestApp(t)

	value, err := h.app.flagOrPrompt("from-flag", "Name:", "", true)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", value)
}
