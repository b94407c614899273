package sdk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("rGi3t3WPmchGjQ91YCLsQtiDGX2xTjjVodycFKtdk7m")
	require.NoError(t, err)
	assert.Equal(t, "rGi3t3WPmchGjQ91YCLsQtiDGX2xTjjVodycFKtdk7m", a.String())
	assert.False(t, a.IsZero())

	assert.Equal(t, "11111111111111111111111111111111", SystemProgramID.String())
	sys, err := ParseAddress(SystemProgramID.String())
	require.NoError(t, err)
	assert.True(t, sys.IsZero())

	_, err = ParseAddress("abc")
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = ParseAddress("0OIl")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAddressJSON(t *testing.T) {
	in := struct {
		Owner Address `json:"owner"`
	}{Owner: Address{9}}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out struct {
		Owner Address `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in.Owner, out.Owner)
}
