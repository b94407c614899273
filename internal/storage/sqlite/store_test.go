package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko-arena/internal/ledger"
	"okinoko-arena/sdk"
)

func openTempStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(context.Background(), path, 2)
	require.NoError(t, err)
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), " ", 0)
	assert.Error(t, err)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "arena.db")
	program := sdk.Address{0xA}

	s := openTempStore(t, path)
	accounts := []ledger.Account{
		{Address: sdk.Address{1}, Owner: program, Lamports: ^uint64(0), Data: []byte{1, 2, 3}},
		{Address: sdk.Address{2}, Lamports: 5},
		{Address: sdk.Address{3}, Owner: program, Lamports: 9, Data: []byte{4}},
	}
	require.NoError(t, s.PutAccounts(ctx, accounts))
	require.NoError(t, s.PutAccounts(ctx, []ledger.Account{{Address: sdk.Address{2}, Lamports: 6}}))
	require.NoError(t, s.Close())

	s = openTempStore(t, path)
	defer s.Close()

	got, found, err := s.GetAccount(ctx, sdk.Address{1})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, accounts[0], got)

	got, found, err = s.GetAccount(ctx, sdk.Address{2})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(6), got.Lamports)
	assert.Nil(t, got.Data)

	_, found, err = s.GetAccount(ctx, sdk.Address{4})
	require.NoError(t, err)
	assert.False(t, found)

	owned, err := s.AccountsByOwner(ctx, program)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, accounts[0], owned[0])
	assert.Equal(t, accounts[2], owned[1])
}

func TestCacheReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t, filepath.Join(t.TempDir(), "arena.db"))
	defer s.Close()

	addr := sdk.Address{1}
	require.NoError(t, s.PutAccounts(ctx, []ledger.Account{{Address: addr, Lamports: 1, Data: []byte{7}}}))

	got, _, err := s.GetAccount(ctx, addr)
	require.NoError(t, err)
	got.Data[0] = 0

	again, _, err := s.GetAccount(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, again.Data)
}
