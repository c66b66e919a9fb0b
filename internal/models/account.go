// Package models defines the entities exchanged with the sysPass backend.
//
// Identifiers are server-assigned: an ID of 0 means the entity has not been
// persisted yet and a save will create it. After any successful create or
// edit round-trip the ID is populated with the server-assigned value.
package models

import (
	"fmt"
	"strings"
)

// Account is a stored credential record. Pass is only populated by
// single-entity view and create operations; search and list results never
// carry it. ClientName is server-derived and read-only.
type Account struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Login      string `json:"login"`
	URL        string `json:"url"`
	Notes      string `json:"notes"`
	CategoryID int    `json:"categoryId"`
	ClientID   int    `json:"clientId"`
	Pass       string `json:"pass,omitempty"`
	ClientName string `json:"clientName,omitempty"`
}

// String renders the one-line form used in interactive pickers,
// e.g. "12. mail server - example.org (Acme)".
func (a Account) String() string {
	url := strings.ReplaceAll(a.URL, "ssh://", "")
	row := fmt.Sprintf("%d. %s - %s (%s)", a.ID, a.Name, url, a.ClientName)
	return strings.Join(strings.Fields(row), " ")
}

// ViewPassword pairs an account with its decrypted password. It is produced
// only by the view-password operation and is never cached.
type ViewPassword struct {
	Account  Account
	Password string
}

// ChangePassword describes a password change for an existing account.
// ExpireDate is epoch seconds; 0 means no expiration.
type ChangePassword struct {
	ID         int
	Pass       string
	ExpireDate int64
}
