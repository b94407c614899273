package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"

	"okinoko-arena/sdk"
)

// Known addresses for the default deployment. Changing seed order, the
// index width or its byte order moves every account and must fail here.
func TestDerivedAddressesAreStable(t *testing.T) {
	programID := sdk.MustParseAddress(DefaultProgramID)
	treasury := sdk.MustParseAddress("9FfxeQ2Fnq1KyvPKZT5sGNzj1jh7Vsa2mk7zZb9io8E")
	owner := sdk.MustParseAddress("D9CWaWjh29uQdBEPSwnZFkcj51QiCKKA6wPs5p7Qrj3")

	game, bump, err := GameAddress(programID, treasury)
	must.NoError(t, err)
	assert.Equal(t, "6u4SXpHwmNZ6GTeTgCUvyVhimrjnz7ty7uacySEZVuCR", game.String())
	assert.Equal(t, uint8(255), bump)

	player, bump, err := PlayerAddress(programID, game, owner)
	must.NoError(t, err)
	assert.Equal(t, "EEFuSw3AbLYNQZMY4ZehzhAMUCkXrkbGBTghaV3fUkSR", player.String())
	assert.Equal(t, uint8(255), bump)

	tests := []struct {
		index uint64
		addr  string
		bump  uint8
	}{
		{1, "HDWBgyPgvpHXzt6F3Jqp3xrofXdRuEvYQK92Zv7LFbuE", 255},
		{2, "B5PgK4t1s8HShZzzTbb4AEKPx1abBdXDaVX65xyXs1AR", 254},
	}
	for _, tt := range tests {
		monster, bump, err := MonsterAddress(programID, game, owner, tt.index)
		must.NoError(t, err)
		assert.Equal(t, tt.addr, monster.String(), "monster %d", tt.index)
		assert.Equal(t, tt.bump, bump, "monster %d", tt.index)
	}
}
