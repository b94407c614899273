package contract

import (
	"encoding/binary"

	"okinoko-arena/sdk"
)

//
// Address derivation for every account the program owns.
//
// Relationships game -> player -> monster are expressed through seeds, never
// stored pointers. The monster index is always encoded as 8 little-endian
// bytes so addresses stay stable as the counter grows.
//

func gameSeeds(treasury sdk.Address) [][]byte {
	return [][]byte{[]byte(GameSeed), treasury.Bytes()}
}

func playerSeeds(game, owner sdk.Address) [][]byte {
	return [][]byte{[]byte(PlayerSeed), game.Bytes(), owner.Bytes()}
}

func monsterSeeds(game, owner sdk.Address, index uint64) [][]byte {
	return [][]byte{[]byte(MonsterSeed), game.Bytes(), owner.Bytes(), monsterIndexSeed(index)}
}

func monsterIndexSeed(index uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], index)
	return b[:]
}

// GameAddress derives the game account for a treasury.
func GameAddress(programID, treasury sdk.Address) (sdk.Address, uint8, error) {
	return sdk.FindProgramAddress(gameSeeds(treasury), programID)
}

// PlayerAddress derives the player account of owner within game.
func PlayerAddress(programID, game, owner sdk.Address) (sdk.Address, uint8, error) {
	return sdk.FindProgramAddress(playerSeeds(game, owner), programID)
}

// MonsterAddress derives the index-th monster spawned by owner within game.
func MonsterAddress(programID, game, owner sdk.Address, index uint64) (sdk.Address, uint8, error) {
	return sdk.FindProgramAddress(monsterSeeds(game, owner, index), programID)
}

// requireDerived rejects a supplied account key that is not the PDA for seeds.
func requireDerived(got sdk.Address, seeds [][]byte, programID sdk.Address, what string) error {
	want, _, err := sdk.FindProgramAddress(seeds, programID)
	if err != nil {
		return abort(ErrInvalidArgument, "derive %s address: %v", what, err)
	}
	return require(got == want, ErrUnauthorized, "%s address %s is not derived from its seeds (want %s)", what, got, want)
}
