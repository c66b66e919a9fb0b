package syspass

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaultops/syspass-cli/internal/models"
)

func ids(accounts []models.Account) []int {
	out := make([]int, len(accounts))
	for i, a := range accounts {
		out[i] = a.ID
	}
	return out
}

func accountsWithIDs(in ...int) []models.Account {
	out := make([]models.Account, len(in))
	for i, id := range in {
		out[i] = models.Account{ID: id}
	}
	return out
}

func TestSortAccountsUsageDescending(t *testing.T) {
	accounts := accountsWithIDs(1, 2, 3)
	sortAccounts(accounts, map[int]int{1: 1, 2: 5, 3: 3})

	assert.Equal(t, []int{2, 3, 1}, ids(accounts))
}

func TestSortAccountsZeroCountersAfterNonzero(t *testing.T) {
	accounts := accountsWithIDs(9, 7, 4)
	sortAccounts(accounts, map[int]int{7: 3})

	assert.Equal(t, []int{7, 4, 9}, ids(accounts))
}

func TestSortAccountsNoUsageFallsBackToID(t *testing.T) {
	accounts := accountsWithIDs(5, 3, 8, 1)
	sortAccounts(accounts, nil)

	assert.Equal(t, []int{1, 3, 5, 8}, ids(accounts))
}

func TestSortAccountsDeterministicOnEqualCounters(t *testing.T) {
	first := accountsWithIDs(4, 2, 6)
	second := accountsWithIDs(4, 2, 6)
	counts := map[int]int{4: 2, 2: 2, 6: 2}

	sortAccounts(first, counts)
	sortAccounts(second, counts)

	// Stable sort: equal counters keep their input order, every time.
	assert.Equal(t, []int{4, 2, 6}, ids(first))
	assert.Equal(t, ids(first), ids(second))
}
