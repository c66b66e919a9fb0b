package syspass

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"github.com/vaultops/syspass-cli/internal/api"
	"github.com/vaultops/syspass-cli/internal/api/apierr"
	"github.com/vaultops/syspass-cli/internal/logging"
	"github.com/vaultops/syspass-cli/internal/models"
)

// clientV3 talks the current dialect: resource/verb method names and one
// uniform response envelope.
//
// https://syspass-doc.readthedocs.io/en/3.1/application/api.html
type clientV3 struct {
	tr    *transport
	usage UsageSource
	log   logging.Logger
}

type v3Response struct {
	Result *v3Result `json:"result"`
	Error  *rpcError `json:"error"`
}

type v3Result struct {
	Count         int             `json:"count"`
	ItemID        int             `json:"itemId"`
	Result        json.RawMessage `json:"result"`
	ResultCode    int             `json:"resultCode"`
	ResultMessage string          `json:"resultMessage"`
}

var jsonNull = []byte("null")

// call sends one request and unwraps the v3 envelope: a missing result with
// a populated error object is an application-level failure.
func (c *clientV3) call(ctx context.Context, method string, args []api.Param, needsPassword bool) (*v3Result, error) {
	body, err := c.tr.call(ctx, method, args, needsPassword)
	if err != nil {
		return nil, err
	}

	var resp v3Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, decodeErr(err)
	}
	if resp.Result == nil {
		if resp.Error != nil {
			return nil, &apierr.ApplicationError{Code: resp.Error.Code, Message: resp.Error.Message}
		}
		return nil, decodeErr(errors.New("response carries neither result nor error"))
	}
	return resp.Result, nil
}

// saveVerb implements the upsert rule shared by accounts, clients and
// categories: id 0 (or absent) creates, anything greater edits, with the id
// appended as an extra parameter.
func (c *clientV3) saveVerb(resource string, id int, args []api.Param) (string, []api.Param) {
	if id > 0 {
		return resource + "/edit", append(args, api.Param{Key: "id", Value: strconv.Itoa(id)})
	}
	return resource + "/create", args
}

// save runs a create/edit call and returns the result envelope after
// checking the server assigned an id.
func (c *clientV3) save(ctx context.Context, resource string, id int, args []api.Param) (*v3Result, error) {
	method, args := c.saveVerb(resource, id, args)
	result, err := c.call(ctx, method, args, true)
	if err != nil {
		return nil, err
	}
	if result.ItemID <= 0 {
		return nil, apierr.ErrIDNotAssigned
	}
	return result, nil
}

// unmarshalEntity decodes the result payload into dst unless the payload is
// empty; create responses often carry only the item id.
func unmarshalEntity(payload json.RawMessage, dst any) error {
	if len(payload) == 0 || bytes.Equal(payload, jsonNull) {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return decodeErr(err)
	}
	return nil
}

func (c *clientV3) SearchAccount(ctx context.Context, search []api.Param, rankByUsage bool) ([]models.Account, error) {
	result, err := c.call(ctx, "account/search", search, false)
	if err != nil {
		return nil, err
	}

	var accounts []models.Account
	if err := json.Unmarshal(result.Result, &accounts); err != nil {
		return nil, decodeErr(err)
	}

	counts := map[int]int{}
	if rankByUsage {
		counts = c.usage.Counts()
	}
	sortAccounts(accounts, counts)

	return accounts, nil
}

func (c *clientV3) ViewAccount(ctx context.Context, id int) (*models.Account, error) {
	result, err := c.call(ctx, "account/view", []api.Param{{Key: "id", Value: strconv.Itoa(id)}}, true)
	if err != nil {
		return nil, err
	}
	var account models.Account
	if err := json.Unmarshal(result.Result, &account); err != nil {
		return nil, decodeErr(err)
	}
	return &account, nil
}

func (c *clientV3) AccountPassword(ctx context.Context, account *models.Account) (*models.ViewPassword, error) {
	result, err := c.call(ctx, "account/viewPass",
		[]api.Param{{Key: "id", Value: strconv.Itoa(account.ID)}}, true)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Password string `json:"password"`
	}
	if err := json.Unmarshal(result.Result, &payload); err != nil {
		return nil, decodeErr(err)
	}
	return &models.ViewPassword{Account: *account, Password: payload.Password}, nil
}

func (c *clientV3) Clients(ctx context.Context) ([]models.Client, error) {
	result, err := c.call(ctx, "client/search", nil, false)
	if err != nil {
		return nil, err
	}
	var clients []models.Client
	if err := json.Unmarshal(result.Result, &clients); err != nil {
		return nil, decodeErr(err)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients, nil
}

func (c *clientV3) Categories(ctx context.Context) ([]models.Category, error) {
	result, err := c.call(ctx, "category/search", nil, false)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := json.Unmarshal(result.Result, &categories); err != nil {
		return nil, decodeErr(err)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (c *clientV3) GetClient(ctx context.Context, id int) (*models.Client, error) {
	result, err := c.call(ctx, "client/view", []api.Param{{Key: "id", Value: strconv.Itoa(id)}}, true)
	if err != nil {
		return nil, err
	}
	var client models.Client
	if err := json.Unmarshal(result.Result, &client); err != nil {
		return nil, decodeErr(err)
	}
	return &client, nil
}

func (c *clientV3) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	result, err := c.call(ctx, "category/view", []api.Param{{Key: "id", Value: strconv.Itoa(id)}}, true)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := json.Unmarshal(result.Result, &category); err != nil {
		return nil, decodeErr(err)
	}
	return &category, nil
}

func (c *clientV3) SaveAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	result, err := c.save(ctx, "account", account.ID, []api.Param{
		{Key: "name", Value: account.Name},
		{Key: "categoryId", Value: strconv.Itoa(account.CategoryID)},
		{Key: "clientId", Value: strconv.Itoa(account.ClientID)},
		{Key: "pass", Value: account.Pass},
		{Key: "login", Value: account.Login},
		{Key: "url", Value: account.URL},
		{Key: "notes", Value: account.Notes},
	})
	if err != nil {
		return nil, err
	}

	saved := *account
	if err := unmarshalEntity(result.Result, &saved); err != nil {
		return nil, err
	}
	saved.ID = result.ItemID
	return &saved, nil
}

func (c *clientV3) SaveClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	result, err := c.save(ctx, "client", client.ID, []api.Param{
		{Key: "name", Value: client.Name},
		{Key: "description", Value: client.Description},
		{Key: "global", Value: strconv.Itoa(client.IsGlobal)},
	})
	if err != nil {
		return nil, err
	}

	saved := *client
	if err := unmarshalEntity(result.Result, &saved); err != nil {
		return nil, err
	}
	saved.ID = result.ItemID
	return &saved, nil
}

func (c *clientV3) SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	result, err := c.save(ctx, "category", category.ID, []api.Param{
		{Key: "name", Value: category.Name},
		{Key: "description", Value: category.Description},
	})
	if err != nil {
		return nil, err
	}

	saved := *category
	if err := unmarshalEntity(result.Result, &saved); err != nil {
		return nil, err
	}
	saved.ID = result.ItemID
	return &saved, nil
}

func (c *clientV3) ChangePassword(ctx context.Context, change *models.ChangePassword) (*models.Account, error) {
	result, err := c.call(ctx, "account/editPass", []api.Param{
		{Key: "expireDate", Value: strconv.FormatInt(change.ExpireDate, 10)},
		{Key: "pass", Value: change.Pass},
		{Key: "id", Value: strconv.Itoa(change.ID)},
	}, true)
	if err != nil {
		return nil, err
	}

	var account models.Account
	if err := json.Unmarshal(result.Result, &account); err != nil {
		return nil, decodeErr(err)
	}
	return &account, nil
}

// delete runs a */delete call; the server signals success with result code
// 0, regardless of the payload.
func (c *clientV3) delete(ctx context.Context, method string, id int) (bool, error) {
	result, err := c.call(ctx, method, []api.Param{{Key: "id", Value: strconv.Itoa(id)}}, false)
	if err != nil {
		return false, err
	}
	return result.ResultCode == 0, nil
}

func (c *clientV3) DeleteAccount(ctx context.Context, id int) (bool, error) {
	return c.delete(ctx, "account/delete", id)
}

func (c *clientV3) DeleteClient(ctx context.Context, id int) (bool, error) {
	return c.delete(ctx, "client/delete", id)
}

func (c *clientV3) DeleteCategory(ctx context.Context, id int) (bool, error) {
	return c.delete(ctx, "category/delete", id)
}
