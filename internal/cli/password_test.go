package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultops/syspass-cli/internal/models"
	"github.com/vaultops/syspass-cli/internal/prompt"
)

func TestChangePasswordFromFlags(t *testing.T) {
	h := newTestApp(t)
	h.app.quiet = true

	var change *models.ChangePassword
	h.client.changePasswordFn = func(_ context.Context, got *models.ChangePassword) (*models.Account, error) {
		change = got
		account := testAccount(5, "mail")
		return &account, nil
	}

	err := h.app.changeAccountPassword(context.Background(), &changePasswordOptions{
		id:         5,
		password:   "new-pass",
		expiration: "2024-03-05",
	})

	require.NoError(t, err)
	require.NotNil(t, change)
	assert.Equal(t, 5, change.ID)
	assert.Equal(t, "new-pass", change.Pass)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 0, time.UTC).Unix(), change.ExpireDate)
}

func TestChangePasswordDefaultExpiry(t *testing.T) {
	h := newTestApp(t)

	var change *models.ChangePassword
	h.client.changePasswordFn = func(_ context.Context, got *models.ChangePassword) (*models.Account, error) {
		change = got
		account := testAccount(5, "mail")
		return &account, nil
	}

	// Accepting the date prompt keeps the suggested 18-month default.
	h.ask.dates = []string{""}

	err := h.app.changeAccountPassword(context.Background(), &changePasswordOptions{
		id:       5,
		password: "new-pass",
	})

	require.NoError(t, err)
	require.NotNil(t, change)
	want, err := prompt.ExpiryEpoch(prompt.DefaultExpiry(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, want, change.ExpireDate)
}

func TestChangePasswordQuietWithoutPassword(t *testing.T) {
	h := newTestApp(t)
	h.app.quiet = true

	err := h.app.changeAccountPassword(context.Background(), &changePasswordOptions{id: 5})
	assert.ErrorIs(t, err, prompt.ErrQuiet)
}

func TestChangePasswordRequiresID(t *testing.T) {
	h := newTestApp(t)

	err := h.app.changeAccountPassword(context.Background(), &changePasswordOptions{password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}

func TestPickPasswordUseOwn(t *testing.T) {
	h := newTestApp(t)

	h.ask.selects = []int{0}
	h.ask.passwords = []string{"my-own-password"}

	password, err := h.app.pickPassword("Password:")
	require.NoError(t, err)
	assert.Equal(t, "my-own-password", password)
}

func TestPickPasswordSuggestion(t *testing.T) {
	h := newTestApp(t)

	h.ask.selects = []int{3}

	password, err := h.app.pickPassword("Password:")
	require.NoError(t, err)
	assert.NotEmpty(t, password)
	assert.Empty(t, h.ask.passwords, "no manual password prompt for a suggestion")
}

func TestPickPasswordQuiet(t *testing.T) {
	h := newTestApp(t)
	h.app.quiet = true

	_, err := h.app.pickPassword("Password:")
	assert.ErrorIs(t, err, prompt.ErrQuiet)
}
