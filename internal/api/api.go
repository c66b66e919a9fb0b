// Package api defines the operation set shared by both backend versions of
// the sysPass JSON-RPC API. The concrete implementations live in the
// syspass subpackage; exactly one of them is selected at startup and stays
// active for the process lifetime.
package api

import (
	"context"
	"fmt"

	"github.com/vaultops/syspass-cli/internal/models"
)

// Param is a single request parameter. Params with an empty key or value
// are dropped before the request is built.
type Param struct {
	Key   string
	Value string
}

// Client is the capability set exposed by every backend version.
//
// Every method performs exactly one synchronous network exchange (or none,
// when the legacy backend rejects the operation locally) and returns either
// a fully normalized result or an error; nothing is retried.
type Client interface {
	// SearchAccount runs a server-side account search. When rankByUsage is
	// set the results are reordered by the locally recorded usage counters.
	// Search results never carry passwords.
	SearchAccount(ctx context.Context, search []Param, rankByUsage bool) ([]models.Account, error)

	// ViewAccount fetches a single account by id, including its secret
	// fields where the backend returns them.
	ViewAccount(ctx context.Context, id int) (*models.Account, error)

	// AccountPassword reveals the decrypted password of the given account.
	AccountPassword(ctx context.Context, account *models.Account) (*models.ViewPassword, error)

	// Clients lists all clients, ordered by ascending id.
	Clients(ctx context.Context) ([]models.Client, error)
	// Categories lists all categories, ordered by ascending id.
	Categories(ctx context.Context) ([]models.Category, error)

	// GetClient fetches a single client by id. Unsupported on the legacy
	// backend.
	GetClient(ctx context.Context, id int) (*models.Client, error)
	// GetCategory fetches a single category by id. Unsupported on the
	// legacy backend.
	GetCategory(ctx context.Context, id int) (*models.Category, error)

	// SaveAccount creates the account when its id is 0 and edits it
	// otherwise. The returned account carries the server-assigned id.
	SaveAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	// SaveClient creates or edits a client, by the same sentinel-id rule.
	SaveClient(ctx context.Context, client *models.Client) (*models.Client, error)
	// SaveCategory creates or edits a category, by the same sentinel-id rule.
	SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error)

	// ChangePassword sets a new password and expiration on an existing
	// account. Unsupported on the legacy backend.
	ChangePassword(ctx context.Context, change *models.ChangePassword) (*models.Account, error)

	// DeleteAccount removes an account; the bool reports whether the server
	// acknowledged the deletion.
	DeleteAccount(ctx context.Context, id int) (bool, error)
	DeleteClient(ctx context.Context, id int) (bool, error)
	DeleteCategory(ctx context.Context, id int) (bool, error)
}

// Version selects one of the two backend dialects.
type Version string

const (
	VersionV3 Version = "SyspassV3"
	VersionV2 Version = "SyspassV2"
)

// ParseVersion maps the apiVersion configuration string onto a Version.
// The empty string selects the current dialect.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "", string(VersionV3):
		return VersionV3, nil
	case string(VersionV2):
		return VersionV2, nil
	default:
		return "", fmt.Errorf("no such API is supported (%s)", s)
	}
}
