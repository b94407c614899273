package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko-arena/internal/ledger"
	"okinoko-arena/sdk"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	addr := sdk.Address{1}
	acc, found, err := s.GetAccount(ctx, addr)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, addr, acc.Address)
	assert.True(t, acc.IsEmpty())

	want := []ledger.Account{
		{Address: addr, Owner: sdk.Address{9}, Lamports: 42, Data: []byte("data")},
		{Address: sdk.Address{2}, Lamports: 7},
	}
	require.NoError(t, s.PutAccounts(ctx, want))

	for _, w := range want {
		got, found, err := s.GetAccount(ctx, w.Address)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, w, got)
	}

	addrs, err := s.Addresses(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []sdk.Address{addr, {2}}, addrs)
}

func TestEnvelope(t *testing.T) {
	in := ledger.Account{Address: sdk.Address{5}, Owner: sdk.Address{6}, Lamports: 1 << 60, Data: []byte{1, 2}}
	raw := ledger.EncodeAccount(in)
	assert.Len(t, raw, sdk.AddressLen+8+2)

	out, err := ledger.DecodeAccount(in.Address, raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = ledger.DecodeAccount(in.Address, raw[:10])
	assert.ErrorIs(t, err, ledger.ErrCorruptAccount)
}
