package models

import "fmt"

// Category groups accounts, e.g. "Databases" or "Mail".
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c Category) String() string {
	return fmt.Sprintf("%d. %s", c.ID, c.Name)
}
