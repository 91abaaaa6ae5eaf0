// Package resultstore persists the results a runner callback produces,
// keyed by address, in an embedded Pebble database. It stands in for the
// durable side of the demonstration indexer.
package resultstore

import (
	"encoding/json"
	"time"

	"chainindexer/pkg/logger"
	"chainindexer/pkg/runner"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// Balance is the value stored per address.
type Balance struct {
	Address   string    `json:"address"`
	Wei       string    `json:"wei"`
	Height    uint64    `json:"height"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store wraps a Pebble handle as a value rather than a package-level
// global, so a process can run more than one indexer runner against
// separate databases.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) a Pebble database at path.
func Open(path string) (*Store, error) {
	logger.Info("opening result store", "path", path)
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "opening pebble db at %s", path)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, "closing pebble db")
	}
	return nil
}

func balanceKey(address string) []byte {
	return []byte("balance:" + address)
}

// PutBalance stores the latest known balance for an address. Encoding goes
// through a pooled buffer since this runs on every batch in the hot write
// path rather than once per process lifetime.
func (s *Store) PutBalance(b Balance) error {
	buf := runner.AcquireEntryBuf()
	defer runner.ReleaseEntryBuf(buf)

	if err := json.NewEncoder(buf).Encode(b); err != nil {
		return errors.Wrap(err, "marshaling balance")
	}
	if err := s.db.Set(balanceKey(b.Address), buf.Bytes(), pebble.Sync); err != nil {
		return errors.Wrapf(err, "writing balance for %s", b.Address)
	}
	return nil
}

// GetBalance looks up the stored balance for an address.
func (s *Store) GetBalance(address string) (Balance, error) {
	v, closer, err := s.db.Get(balanceKey(address))
	if err != nil {
		return Balance{}, errors.Wrapf(err, "reading balance for %s", address)
	}
	defer closer.Close()

	var b Balance
	if err := json.Unmarshal(v, &b); err != nil {
		return Balance{}, errors.Wrapf(err, "decoding balance for %s", address)
	}
	return b, nil
}

// Count returns the number of balances currently stored, by scanning the
// balance: prefix. Intended for demo/debug use, not a hot path.
func (s *Store) Count() (int, error) {
	prefix := []byte("balance:")
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return 0, errors.Wrap(err, "creating iterator")
	}
	defer iter.Close()

	n := 0
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if len(iter.Key()) < len(prefix) || string(iter.Key()[:len(prefix)]) != string(prefix) {
			break
		}
		n++
	}
	return n, errors.Wrap(iter.Error(), "iterating balances")
}
