package syspass

import (
	"sort"

	"github.com/vaultops/syspass-cli/internal/models"
)

// UsageSource provides the per-account usage counters consulted when
// ranking search results. Implemented by usage.Store; tests use a map.
type UsageSource interface {
	Counts() map[int]int
}

// sortAccounts orders search results in place: accounts with a nonzero
// counter first, by counter descending; accounts without recorded usage
// after them, by ascending id. The sort is stable, so the order is fully
// deterministic for identical counters and input.
func sortAccounts(accounts []models.Account, counts map[int]int) {
	sort.SliceStable(accounts, func(i, j int) bool {
		left, right := counts[accounts[i].ID], counts[accounts[j].ID]
		if left == 0 && right == 0 {
			return accounts[i].ID < accounts[j].ID
		}
		return left > right
	})
}
