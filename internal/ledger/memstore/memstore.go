// Package memstore keeps ledger accounts in a go-datastore. The default
// backing is an in-memory map, which suits tests and throwaway sessions.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ds "github.com/ipfs/go-datastore"
	dsq "github.com/ipfs/go-datastore/query"
	dssync "github.com/ipfs/go-datastore/sync"

	"okinoko-arena/internal/ledger"
	"okinoko-arena/sdk"
)

const accountPrefix = "/accounts"

// Store implements ledger.Store over a batching datastore.
type Store struct {
	d ds.Batching
}

var _ ledger.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return Wrap(dssync.MutexWrap(ds.NewMapDatastore()))
}

// Wrap stores accounts in an existing datastore.
func Wrap(d ds.Batching) *Store {
	return &Store{d: d}
}

func accountKey(addr sdk.Address) ds.Key {
	return ds.NewKey(accountPrefix + "/" + addr.String())
}

func (s *Store) GetAccount(ctx context.Context, addr sdk.Address) (ledger.Account, bool, error) {
	raw, err := s.d.Get(ctx, accountKey(addr))
	if errors.Is(err, ds.ErrNotFound) {
		return ledger.Account{Address: addr}, false, nil
	}
	if err != nil {
		return ledger.Account{}, false, err
	}
	acc, err := ledger.DecodeAccount(addr, raw)
	if err != nil {
		return ledger.Account{}, false, err
	}
	return acc, true, nil
}

func (s *Store) PutAccounts(ctx context.Context, accounts []ledger.Account) error {
	b, err := s.d.Batch(ctx)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		if err := b.Put(ctx, accountKey(acc.Address), ledger.EncodeAccount(acc)); err != nil {
			return fmt.Errorf("stage %s: %w", acc.Address, err)
		}
	}
	return b.Commit(ctx)
}

// Addresses lists every stored account.
func (s *Store) Addresses(ctx context.Context) ([]sdk.Address, error) {
	res, err := s.d.Query(ctx, dsq.Query{Prefix: accountPrefix, KeysOnly: true})
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var out []sdk.Address
	for r := range res.Next() {
		if r.Error != nil {
			return nil, r.Error
		}
		name := strings.TrimPrefix(r.Key, accountPrefix+"/")
		addr, err := sdk.ParseAddress(name)
		if err != nil {
			return nil, fmt.Errorf("account key %s: %w", r.Key, err)
		}
		out = append(out, addr)
	}
	return out, nil
}

func (s *Store) Close() error { return s.d.Close() }
