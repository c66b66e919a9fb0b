package syspass

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/vaultops/syspass-cli/internal/api"
	"github.com/vaultops/syspass-cli/internal/api/apierr"
	"github.com/vaultops/syspass-cli/internal/logging"
	"github.com/vaultops/syspass-cli/internal/models"
)

// clientV2 talks the legacy dialect. It has materially fewer capabilities:
// entities can only be created, never edited, and single-entity views of
// clients/categories as well as password changes do not exist. Those
// operations are rejected locally without touching the network.
//
// https://syspass-doc.readthedocs.io/en/2.1/application/api.html
type clientV2 struct {
	tr    *transport
	usage UsageSource
	log   logging.Logger
}

// The legacy server answers with one of two incompatible body shapes: a
// bare code/result envelope, or an entity-bearing one whose result payload
// is an arbitrary JSON value. v2Envelope holds whichever shape matched.
// This is a wire-format inconsistency of the v2 API that has to be
// preserved, not a pattern worth imitating.
type v2Envelope struct {
	Code   *v2CodeResult   // set when the code shape matched
	Entity json.RawMessage // set when the entity shape matched
	Err    *rpcError
}

type v2CodeResult struct {
	ItemID     *string `json:"itemId"`
	ResultCode *int    `json:"resultCode"`
}

// call sends one request and decodes the legacy envelope by attempting the
// code shape first and falling back to the entity shape.
func (c *clientV2) call(ctx context.Context, method string, args []api.Param, needsPassword bool) (*v2Envelope, error) {
	body, err := c.tr.call(ctx, method, args, needsPassword)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, decodeErr(err)
	}

	env := &v2Envelope{Err: probe.Error}
	if len(probe.Result) > 0 {
		var code v2CodeResult
		if err := json.Unmarshal(probe.Result, &code); err == nil && code.ResultCode != nil {
			env.Code = &code
			return env, nil
		}
		env.Entity = probe.Result
	}
	return env, nil
}

// appErr promotes a populated error branch to an application error.
func (e *v2Envelope) appErr() error {
	if e.Err != nil {
		return &apierr.ApplicationError{Code: e.Err.Code, Message: e.Err.Message}
	}
	return nil
}

// entityResult returns the entity payload or fails when the server answered
// with the wrong shape.
func (e *v2Envelope) entityResult() (json.RawMessage, error) {
	if err := e.appErr(); err != nil {
		return nil, err
	}
	if e.Entity == nil {
		return nil, decodeErr(fmt.Errorf("expected an entity-bearing response"))
	}
	return e.Entity, nil
}

// Legacy wire records. Every field arrives as a string; identifiers are
// parsed strictly and non-numeric values fail the whole operation.

type v2Account struct {
	CategoryID   string `json:"account_categoryId"`
	CountView    string `json:"account_countView"`
	CustomerID   string `json:"account_customerId"`
	ID           string `json:"account_id"`
	Login        string `json:"account_login"`
	Name         string `json:"account_name"`
	Notes        string `json:"account_notes"`
	Pass         string `json:"account_pass"`
	URL          string `json:"account_url"`
	CategoryName string `json:"category_name"`
	CustomerName string `json:"customer_name"`
	GroupName    string `json:"usergroup_name"`
}

func (a *v2Account) toModel() (models.Account, error) {
	id, err := parseID("account_id", a.ID)
	if err != nil {
		return models.Account{}, err
	}
	categoryID, err := parseID("account_categoryId", a.CategoryID)
	if err != nil {
		return models.Account{}, err
	}
	clientID, err := parseID("account_customerId", a.CustomerID)
	if err != nil {
		return models.Account{}, err
	}
	return models.Account{
		ID:         id,
		Name:       a.Name,
		Login:      a.Login,
		URL:        a.URL,
		Notes:      a.Notes,
		CategoryID: categoryID,
		ClientID:   clientID,
		Pass:       a.Pass,
		ClientName: a.CustomerName,
	}, nil
}

type v2Customer struct {
	Description string `json:"customer_description"`
	ID          string `json:"customer_id"`
	Name        string `json:"customer_name"`
}

func (c *v2Customer) toModel() (models.Client, error) {
	id, err := parseID("customer_id", c.ID)
	if err != nil {
		return models.Client{}, err
	}
	// The legacy API has no global flag on customers.
	return models.Client{ID: id, Name: c.Name, Description: c.Description}, nil
}

type v2Category struct {
	Description string `json:"category_description"`
	ID          string `json:"category_id"`
	Name        string `json:"category_name"`
}

func (c *v2Category) toModel() (models.Category, error) {
	id, err := parseID("category_id", c.ID)
	if err != nil {
		return models.Category{}, err
	}
	return models.Category{ID: id, Name: c.Name, Description: c.Description}, nil
}

func parseID(field, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, decodeErr(fmt.Errorf("non-numeric %s %q", field, value))
	}
	return id, nil
}

// numericEntries filters a legacy list payload down to its numeric-id keys.
// The server interleaves entity entries (keyed "1", "2", ...) with unrelated
// metadata keys in the same object; only integer-parseable keys are entity
// values.
func numericEntries(payload json.RawMessage) ([]json.RawMessage, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(payload, &object); err != nil {
		return nil, decodeErr(err)
	}

	keys := make([]string, 0, len(object))
	for key := range object {
		if _, err := strconv.Atoi(key); err == nil {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	entries := make([]json.RawMessage, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, object[key])
	}
	return entries, nil
}

func (c *clientV2) SearchAccount(ctx context.Context, search []api.Param, rankByUsage bool) ([]models.Account, error) {
	env, err := c.call(ctx, "getAccountSearch", search, false)
	if err != nil {
		return nil, err
	}
	payload, err := env.entityResult()
	if err != nil {
		return nil, err
	}

	var raw []v2Account
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, decodeErr(err)
	}

	accounts := make([]models.Account, 0, len(raw))
	for i := range raw {
		account, err := raw[i].toModel()
		if err != nil {
			return nil, err
		}
		// Search results never carry passwords.
		account.Pass = ""
		accounts = append(accounts, account)
	}

	counts := map[int]int{}
	if rankByUsage {
		counts = c.usage.Counts()
	}
	sortAccounts(accounts, counts)

	return accounts, nil
}

func (c *clientV2) ViewAccount(ctx context.Context, id int) (*models.Account, error) {
	env, err := c.call(ctx, "getAccountData", []api.Param{{Key: "id", Value: strconv.Itoa(id)}}, true)
	if err != nil {
		return nil, err
	}
	payload, err := env.entityResult()
	if err != nil {
		return nil, err
	}

	var raw v2Account
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, decodeErr(err)
	}
	account, err := raw.toModel()
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *clientV2) AccountPassword(ctx context.Context, account *models.Account) (*models.ViewPassword, error) {
	env, err := c.call(ctx, "getAccountPassword",
		[]api.Param{{Key: "id", Value: strconv.Itoa(account.ID)}}, true)
	if err != nil {
		return nil, err
	}
	payload, err := env.entityResult()
	if err != nil {
		return nil, err
	}

	var result struct {
		Pass string `json:"pass"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, decodeErr(err)
	}
	return &models.ViewPassword{Account: *account, Password: result.Pass}, nil
}

func (c *clientV2) Clients(ctx context.Context) ([]models.Client, error) {
	env, err := c.call(ctx, "getCustomers", nil, false)
	if err != nil {
		return nil, err
	}
	payload, err := env.entityResult()
	if err != nil {
		return nil, err
	}
	entries, err := numericEntries(payload)
	if err != nil {
		return nil, err
	}

	clients := make([]models.Client, 0, len(entries))
	for _, entry := range entries {
		var raw v2Customer
		if err := json.Unmarshal(entry, &raw); err != nil {
			return nil, decodeErr(err)
		}
		client, err := raw.toModel()
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients, nil
}

func (c *clientV2) Categories(ctx context.Context) ([]models.Category, error) {
	env, err := c.call(ctx, "getCategories", nil, false)
	if err != nil {
		return nil, err
	}
	payload, err := env.entityResult()
	if err != nil {
		return nil, err
	}
	entries, err := numericEntries(payload)
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(entries))
	for _, entry := range entries {
		var raw v2Category
		if err := json.Unmarshal(entry, &raw); err != nil {
			return nil, decodeErr(err)
		}
		category, err := raw.toModel()
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (c *clientV2) GetClient(ctx context.Context, id int) (*models.Client, error) {
	return nil, errUnsupported(api.VersionV2)
}

func (c *clientV2) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return nil, errUnsupported(api.VersionV2)
}

// create runs an add* call and extracts the server-assigned id from
// whichever response shape came back. Saves of already-persisted entities
// are rejected before any network traffic: the legacy API cannot edit.
func (c *clientV2) create(ctx context.Context, method string, id int, args []api.Param) (int, error) {
	if id > 0 {
		return 0, errUnsupported(api.VersionV2)
	}

	env, err := c.call(ctx, method, args, true)
	if err != nil {
		return 0, err
	}
	if err := env.appErr(); err != nil {
		return 0, err
	}

	if env.Code != nil {
		if env.Code.ItemID == nil {
			return 0, apierr.ErrIDNotAssigned
		}
		newID, err := strconv.Atoi(*env.Code.ItemID)
		if err != nil {
			return 0, decodeErr(fmt.Errorf("non-numeric itemId %q", *env.Code.ItemID))
		}
		return newID, nil
	}

	var result struct {
		ItemID *int `json:"itemId"`
	}
	if err := json.Unmarshal(env.Entity, &result); err != nil {
		return 0, decodeErr(err)
	}
	if result.ItemID == nil {
		return 0, apierr.ErrIDNotAssigned
	}
	return *result.ItemID, nil
}

func (c *clientV2) SaveAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	id, err := c.create(ctx, "addAccount", account.ID, []api.Param{
		{Key: "name", Value: account.Name},
		{Key: "categoryId", Value: strconv.Itoa(account.CategoryID)},
		{Key: "customerId", Value: strconv.Itoa(account.ClientID)},
		{Key: "pass", Value: account.Pass},
		{Key: "login", Value: account.Login},
		{Key: "url", Value: account.URL},
		{Key: "notes", Value: account.Notes},
	})
	if err != nil {
		return nil, err
	}
	// The add response carries no entity; fetch the freshly created one.
	return c.ViewAccount(ctx, id)
}

func (c *clientV2) SaveClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	id, err := c.create(ctx, "addCustomer", client.ID, []api.Param{
		{Key: "name", Value: client.Name},
		{Key: "description", Value: client.Description},
	})
	if err != nil {
		return nil, err
	}
	saved := *client
	saved.ID = id
	return &saved, nil
}

func (c *clientV2) SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	id, err := c.create(ctx, "addCategory", category.ID, []api.Param{
		{Key: "name", Value: category.Name},
		{Key: "description", Value: category.Description},
	})
	if err != nil {
		return nil, err
	}
	saved := *category
	saved.ID = id
	return &saved, nil
}

func (c *clientV2) ChangePassword(ctx context.Context, change *models.ChangePassword) (*models.Account, error) {
	return nil, errUnsupported(api.VersionV2)
}

// delete runs a delete* call; result code 0 signals success.
func (c *clientV2) delete(ctx context.Context, method string, id int) (bool, error) {
	env, err := c.call(ctx, method, []api.Param{{Key: "id", Value: strconv.Itoa(id)}}, false)
	if err != nil {
		return false, err
	}
	if err := env.appErr(); err != nil {
		return false, err
	}
	if env.Code == nil {
		return false, decodeErr(fmt.Errorf("expected a code response"))
	}
	return *env.Code.ResultCode == 0, nil
}

func (c *clientV2) DeleteAccount(ctx context.Context, id int) (bool, error) {
	return c.delete(ctx, "deleteAccount", id)
}

func (c *clientV2) DeleteClient(ctx context.Context, id int) (bool, error) {
	return c.delete(ctx, "deleteCustomer", id)
}

func (c *clientV2) DeleteCategory(ctx context.Context, id int) (bool, error) {
	return c.delete(ctx, "deleteCategory", id)
}
