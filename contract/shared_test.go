package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
)

func TestAccountSizes(t *testing.T) {
	assert.Len(t, EncodeGame(&Game{}), GameAccountSize)
	assert.Len(t, EncodePlayer(&Player{}), PlayerAccountSize)
	assert.Len(t, EncodeMonster(&Monster{}), MonsterAccountSize)
	assert.Equal(t, 81, GameAccountSize)
	assert.Equal(t, 112, PlayerAccountSize)
	assert.Equal(t, 80, MonsterAccountSize)
}

func TestPlayerCodec(t *testing.T) {
	in := &Player{
		Owner:                     hero,
		Game:                      testAddress(9),
		ActionPointsSpent:         3,
		ActionPointsToBeCollected: 108,
		Experience:                3,
		Kills:                     1,
		NextMonsterIndex:          1 << 40,
	}
	b := EncodePlayer(in)
	out, err := DecodePlayer(b)
	must.NoError(t, err)
	assert.Equal(t, in, out)

	// counters are little-endian right after owner and game
	assert.Equal(t, byte(3), b[discriminatorLen+64])
	assert.Equal(t, byte(108), b[discriminatorLen+72])
}

func TestDecodeRejectsForeignRecords(t *testing.T) {
	game := EncodeGame(&Game{GameMaster: master, Treasury: treasury, MaxItemsPerPlayer: 8})

	_, err := DecodePlayer(game)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = DecodeMonster(game)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = DecodeGame(game[:len(game)-1])
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = DecodeGame(append(game, 0))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDecodeRecord(t *testing.T) {
	kind, rec, err := DecodeRecord(EncodeMonster(&Monster{Owner: hero, Hitpoints: 42}))
	must.NoError(t, err)
	assert.Equal(t, "monster", kind)
	assert.Equal(t, uint64(42), rec.(*Monster).Hitpoints)

	kind, rec, err = DecodeRecord(EncodeGame(&Game{Treasury: treasury, MaxItemsPerPlayer: 2}))
	must.NoError(t, err)
	assert.Equal(t, "game", kind)
	assert.Equal(t, treasury, rec.(*Game).Treasury)

	_, _, err = DecodeRecord([]byte("not a record"))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, _, err = DecodeRecord(nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDiscriminatorsAreDistinct(t *testing.T) {
	seen := map[discriminator]string{}
	for _, d := range []struct {
		name string
		d    discriminator
	}{
		{"game", gameDiscriminator},
		{"player", playerDiscriminator},
		{"monster", monsterDiscriminator},
	} {
		_, dup := seen[d.d]
		assert.False(t, dup, d.name)
		seen[d.d] = d.name
	}
	for _, name := range instructionNames {
		d := newDiscriminator("global", name)
		_, dup := seen[d]
		assert.False(t, dup, name)
		seen[d] = name
	}
}

func TestInstructionName(t *testing.T) {
	ix := mustBuild(NewAttackMonsterInstruction(sdkProgramID(), master, hero, 7))
	name, ok := InstructionName(ix.Data)
	must.True(t, ok)
	assert.Equal(t, IxAttackMonster, name)
	assert.Len(t, ix.Data, discriminatorLen+8)
	assert.Equal(t, IxAttackMonster, New(sdkProgramID()).InstructionName(ix.Data))

	_, ok = InstructionName([]byte{1, 2})
	assert.False(t, ok)
	assert.Equal(t, "unknown", New(sdkProgramID()).InstructionName(nil))
}

func TestErrorCodes(t *testing.T) {
	err := abort(ErrInvalidTarget, "monster %d", 3)
	assert.Equal(t, uint32(6004), CodeOf(err))
	assert.EqualError(t, err, "InvalidTarget: target cannot be acted on: monster 3")
	assert.Zero(t, CodeOf(errors.New("plain")))

	kind, ok := ErrorByCode(6003)
	must.True(t, ok)
	assert.Same(t, ErrInsufficientBudget, kind)
	_, ok = ErrorByCode(42)
	assert.False(t, ok)
}

func TestParseEvent(t *testing.T) {
	ev, ok := ParseEvent(`Program log: {"type":"monsterSpawned","attributes":{"index":"0"}}`)
	must.True(t, ok)
	assert.Equal(t, "monsterSpawned", ev.Type)
	assert.Equal(t, "0", ev.Attributes["index"])

	_, ok = ParseEvent("Program log: Monster Spawned!")
	assert.False(t, ok)
}
