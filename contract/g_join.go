package contract

import "okinoko-arena/sdk"

// createPlayer registers the signer in a game and charges the entry fee.
//
// Accounts: game, playerAccount (w), player (w, s).
func createPlayer(ctx sdk.InvokeContext, programID sdk.Address) error {
	accs, err := accounts(ctx, 3)
	if err != nil {
		return err
	}
	gameAcc, playerAcc, owner := accs[0], accs[1], accs[2]

	if err := requireSigner(owner, "player"); err != nil {
		return err
	}
	if err := requireWritable(owner, "player"); err != nil {
		return err
	}
	g, err := loadGame(gameAcc, programID)
	if err != nil {
		return err
	}
	if err := requireDerived(gameAcc.Key, gameSeeds(g.Treasury), programID, "game"); err != nil {
		return err
	}
	if err := requireDerived(playerAcc.Key, playerSeeds(gameAcc.Key, owner.Key), programID, "player"); err != nil {
		return err
	}
	rent, err := checkAllocate(ctx, playerAcc, PlayerAccountSize, "player")
	if err != nil {
		return err
	}
	total, err := checkedAdd(rent, CreatePlayerActionPoints, "create player cost")
	if err != nil {
		return err
	}
	if err := checkBudget(owner, total, "create player"); err != nil {
		return err
	}

	p := &Player{
		Owner:                     owner.Key,
		Game:                      gameAcc.Key,
		ActionPointsToBeCollected: CreatePlayerActionPoints,
	}
	allocate(programID, owner, playerAcc, rent, EncodePlayer(p))
	spendActionPoints(ctx, CreatePlayerActionPoints, owner, playerAcc)

	ctx.Log("Hero has entered the game!")
	EmitPlayerCreated(ctx, gameAcc.Key, playerAcc.Key, owner.Key)
	return nil
}
