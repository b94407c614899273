package contract

import (
	"fmt"

	"okinoko-arena/sdk"
)

// Instruction names as they appear in logs, metrics and discriminators.
const (
	IxCreateGame          = "create_game"
	IxCreatePlayer        = "create_player"
	IxSpawnMonster        = "spawn_monster"
	IxAttackMonster       = "attack_monster"
	IxDepositActionPoints = "deposit_action_points"
)

var instructionNames = []string{
	IxCreateGame,
	IxCreatePlayer,
	IxSpawnMonster,
	IxAttackMonster,
	IxDepositActionPoints,
}

var instructionDiscriminators = func() map[discriminator]string {
	m := make(map[discriminator]string, len(instructionNames))
	for _, name := range instructionNames {
		m[newDiscriminator("global", name)] = name
	}
	return m
}()

// InstructionName resolves the instruction encoded in data, if any.
func InstructionName(data []byte) (string, bool) {
	if len(data) < discriminatorLen {
		return "", false
	}
	var d discriminator
	copy(d[:], data[:discriminatorLen])
	name, ok := instructionDiscriminators[d]
	return name, ok
}

func instructionData(name string, args func(w *wr)) []byte {
	w := newWriter(discriminatorLen + 8)
	w.discriminator(newDiscriminator("global", name))
	if args != nil {
		args(w)
	}
	return w.b
}

// ---------- Client builders ----------
//
// Builders derive every PDA the instruction touches and declare the access
// each account needs, so a scheduler can detect conflicts up front.

// NewCreateGameInstruction builds createGame. gameMaster pays for the
// account; treasury must co-sign.
func NewCreateGameInstruction(programID, gameMaster, treasury sdk.Address, maxItemsPerPlayer uint8) (sdk.Instruction, error) {
	game, _, err := GameAddress(programID, treasury)
	if err != nil {
		return sdk.Instruction{}, fmt.Errorf("derive game: %w", err)
	}
	return sdk.Instruction{
		ProgramID: programID,
		Accounts: []sdk.AccountMeta{
			sdk.Writable(game),
			sdk.Signer(gameMaster, true),
			sdk.Signer(treasury, false),
		},
		Data: instructionData(IxCreateGame, func(w *wr) { w.u8(maxItemsPerPlayer) }),
	}, nil
}

// NewCreatePlayerInstruction builds createPlayer for owner in game.
func NewCreatePlayerInstruction(programID, game, owner sdk.Address) (sdk.Instruction, error) {
	player, _, err := PlayerAddress(programID, game, owner)
	if err != nil {
		return sdk.Instruction{}, fmt.Errorf("derive player: %w", err)
	}
	return sdk.Instruction{
		ProgramID: programID,
		Accounts: []sdk.AccountMeta{
			sdk.Readonly(game),
			sdk.Writable(player),
			sdk.Signer(owner, true),
		},
		Data: instructionData(IxCreatePlayer, nil),
	}, nil
}

// NewSpawnMonsterInstruction builds spawnMonster. nextMonsterIndex is the
// player's current counter, read by the client beforehand.
func NewSpawnMonsterInstruction(programID, game, owner sdk.Address, nextMonsterIndex uint64) (sdk.Instruction, error) {
	player, _, err := PlayerAddress(programID, game, owner)
	if err != nil {
		return sdk.Instruction{}, fmt.Errorf("derive player: %w", err)
	}
	monster, _, err := MonsterAddress(programID, game, owner, nextMonsterIndex)
	if err != nil {
		return sdk.Instruction{}, fmt.Errorf("derive monster: %w", err)
	}
	return sdk.Instruction{
		ProgramID: programID,
		Accounts: []sdk.AccountMeta{
			sdk.Readonly(game),
			sdk.Writable(player),
			sdk.Writable(monster),
			sdk.Signer(owner, true),
		},
		Data: instructionData(IxSpawnMonster, nil),
	}, nil
}

// NewAttackMonsterInstruction builds attackMonster against the
// monsterIndex-th monster owner spawned in game.
func NewAttackMonsterInstruction(programID, game, owner sdk.Address, monsterIndex uint64) (sdk.Instruction, error) {
	player, _, err := PlayerAddress(programID, game, owner)
	if err != nil {
		return sdk.Instruction{}, fmt.Errorf("derive player: %w", err)
	}
	monster, _, err := MonsterAddress(programID, game, owner, monsterIndex)
	if err != nil {
		return sdk.Instruction{}, fmt.Errorf("derive monster: %w", err)
	}
	return sdk.Instruction{
		ProgramID: programID,
		Accounts: []sdk.AccountMeta{
			sdk.Writable(player),
			sdk.Writable(monster),
			sdk.Signer(owner, true),
		},
		Data: instructionData(IxAttackMonster, func(w *wr) { w.u64(monsterIndex) }),
	}, nil
}

// NewDepositActionPointsInstruction builds the collection crank that moves
// a player's escrowed action points into the game treasury. Anyone may
// submit it.
func NewDepositActionPointsInstruction(programID, treasury, owner sdk.Address) (sdk.Instruction, error) {
	game, _, err := GameAddress(programID, treasury)
	if err != nil {
		return sdk.Instruction{}, fmt.Errorf("derive game: %w", err)
	}
	player, _, err := PlayerAddress(programID, game, owner)
	if err != nil {
		return sdk.Instruction{}, fmt.Errorf("derive player: %w", err)
	}
	return sdk.Instruction{
		ProgramID: programID,
		Accounts: []sdk.AccountMeta{
			sdk.Writable(game),
			sdk.Writable(player),
			sdk.Writable(treasury),
		},
		Data: instructionData(IxDepositActionPoints, nil),
	}, nil
}
