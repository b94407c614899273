package contract

import (
	"fmt"

	"okinoko-arena/sdk"
)

// createGame allocates the game account for a treasury.
//
// Accounts: game (w), gameMaster (w, s), treasury (s).
func createGame(ctx sdk.InvokeContext, programID sdk.Address, maxItemsPerPlayer uint8) error {
	accs, err := accounts(ctx, 3)
	if err != nil {
		return err
	}
	gameAcc, master, treasury := accs[0], accs[1], accs[2]

	if err := requireSigner(master, "game master"); err != nil {
		return err
	}
	if err := requireSigner(treasury, "treasury"); err != nil {
		return err
	}
	if err := requireWritable(master, "game master"); err != nil {
		return err
	}
	if err := require(maxItemsPerPlayer >= 1 && maxItemsPerPlayer <= MaxItemsPerPlayer, ErrInvalidArgument,
		"max items per player must be within 1..%d, got %d", MaxItemsPerPlayer, maxItemsPerPlayer); err != nil {
		return err
	}
	if err := requireDerived(gameAcc.Key, gameSeeds(treasury.Key), programID, "game"); err != nil {
		return err
	}
	rent, err := checkAllocate(ctx, gameAcc, GameAccountSize, "game")
	if err != nil {
		return err
	}
	if err := checkBudget(master, rent, "create game"); err != nil {
		return err
	}

	g := &Game{
		GameMaster:        master.Key,
		Treasury:          treasury.Key,
		MaxItemsPerPlayer: maxItemsPerPlayer,
	}
	allocate(programID, master, gameAcc, rent, EncodeGame(g))

	ctx.Log(fmt.Sprintf("Game created with %d items per player", maxItemsPerPlayer))
	EmitGameCreated(ctx, gameAcc.Key, master.Key, treasury.Key, maxItemsPerPlayer)
	return nil
}
