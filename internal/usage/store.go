// Package usage persists per-account usage counters in a small BoltDB file.
// The counters drive the ranking of search results: frequently selected
// accounts float to the top of the picker.
package usage

import (
	"context"
	"strconv"

	"go.etcd.io/bbolt"

	"github.com/vaultops/syspass-cli/internal/logging"
)

var bucketUsage = []byte("usage")

// Store reads and increments usage counters keyed by account id. The store
// is deliberately lenient on reads: a missing or unreadable file yields an
// empty counter map so a broken local file never breaks search.
type Store struct {
	path string
	log  logging.Logger
}

func NewStore(path string, log logging.Logger) *Store {
	return &Store{path: path, log: log}
}

// Counts returns all recorded counters. Errors degrade to an empty map.
func (s *Store) Counts() map[int]int {
	counts := map[int]int{}

	db, err := bbolt.Open(s.path, 0o600, &bbolt.Options{ReadOnly: true})
	if err != nil {
		s.log.Debug(context.Background(), "usage store unavailable", "path", s.path, "error", err)
		return counts
	}
	defer db.Close()

	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUsage)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			id, err := strconv.Atoi(string(k))
			if err != nil {
				return nil // skip foreign keys
			}
			n, err := strconv.Atoi(string(v))
			if err != nil {
				return nil
			}
			counts[id] = n
			return nil
		})
	})
	if err != nil {
		s.log.Debug(context.Background(), "usage store read failed", "path", s.path, "error", err)
		return map[int]int{}
	}
	return counts
}

// Record increments the counter of the given account id, creating the file
// and bucket on first use.
func (s *Store) Record(id int) error {
	db, err := bbolt.Open(s.path, 0o600, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketUsage)
		if err != nil {
			return err
		}
		key := []byte(strconv.Itoa(id))
		n := 0
		if v := b.Get(key); v != nil {
			n, _ = strconv.Atoi(string(v))
		}
		return b.Put(key, []byte(strconv.Itoa(n+1)))
	})
}
