package models

import "fmt"

// Client is the owning customer of an account. The legacy API calls this
// entity "customer". IsGlobal > 0 makes the client visible to all users;
// the scoping is enforced server-side.
type Client struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsGlobal    int    `json:"isGlobal"`
}

func (c Client) String() string {
	if c.IsGlobal > 0 {
		return fmt.Sprintf("%d. %s (*)", c.ID, c.Name)
	}
	return fmt.Sprintf("%d. %s", c.ID, c.Name)
}
