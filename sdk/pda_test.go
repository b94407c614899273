package sdk

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgram = MustParseAddress("rGi3t3WPmchGjQ91YCLsQtiDGX2xTjjVodycFKtdk7m")

func TestFindProgramAddressDeterministic(t *testing.T) {
	owner := Address{7, 7, 7}
	seeds := [][]byte{[]byte("PLAYER"), owner[:]}

	addr, bump, err := FindProgramAddress(seeds, testProgram)
	require.NoError(t, err)
	again, bumpAgain, err := FindProgramAddress(seeds, testProgram)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, bumpAgain)
	assert.False(t, IsOnCurve(addr[:]))

	// the bump reproduces the address directly
	direct, err := CreateProgramAddress(append(seeds, []byte{bump}), testProgram)
	require.NoError(t, err)
	assert.Equal(t, addr, direct)

	// seeds are not mutated by the search
	assert.Len(t, seeds, 2)
}

// Reference vectors published with the on-chain runtime's address derivation.
func TestCreateProgramAddressVectors(t *testing.T) {
	loader := MustParseAddress("BPFLoaderUpgradeab1e11111111111111111111111")
	seedKey := MustParseAddress("SeedPubey1111111111111111111111111111111111")

	tests := []struct {
		seeds [][]byte
		want  string
	}{
		{[][]byte{{}, {1}}, "BwqrghZA2htAcqq8dzP1WDAhTXYTYWj7CHxF5j7TDBAe"},
		{[][]byte{[]byte("☉"), {0}}, "13yWmRpaTR4r5nAktwLqMpRNr28tnVUZw26rTvPSSB19"},
		{[][]byte{[]byte("Talking"), []byte("Squirrels")}, "2fnQrngrQT4SeLcdToJAD96phoEjNL2man2kfRLCASVk"},
		{[][]byte{seedKey[:], {1}}, "976ymqVnfE32QFe6NfGDctSvVa36LWnvYxhU6G2232YL"},
	}
	for _, tt := range tests {
		got, err := CreateProgramAddress(tt.seeds, loader)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String())
	}

	a, err := CreateProgramAddress([][]byte{[]byte("Talking")}, loader)
	require.NoError(t, err)
	b, err := CreateProgramAddress([][]byte{[]byte("Talking"), []byte("Squirrels")}, loader)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFindProgramAddressSeparatesInputs(t *testing.T) {
	a, _, err := FindProgramAddress([][]byte{[]byte("GAME"), {1}}, testProgram)
	require.NoError(t, err)
	b, _, err := FindProgramAddress([][]byte{[]byte("GAME"), {2}}, testProgram)
	require.NoError(t, err)
	c, _, err := FindProgramAddress([][]byte{[]byte("GAME"), {1}}, Address{1})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestProgramAddressSeedLimits(t *testing.T) {
	_, _, err := FindProgramAddress([][]byte{bytes.Repeat([]byte{1}, MaxSeedLen+1)}, testProgram)
	assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)

	_, _, err = FindProgramAddress([][]byte{bytes.Repeat([]byte{1}, MaxSeedLen)}, testProgram)
	assert.NoError(t, err)

	tooMany := make([][]byte, MaxSeeds)
	_, _, err = FindProgramAddress(tooMany, testProgram)
	assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)

	_, err = CreateProgramAddress(make([][]byte, MaxSeeds+1), testProgram)
	assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)
}

func TestIsOnCurve(t *testing.T) {
	pub := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize)).Public().(ed25519.PublicKey)
	assert.True(t, IsOnCurve(pub))
	assert.False(t, IsOnCurve([]byte{1, 2, 3}))
}
