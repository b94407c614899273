package contract

import "okinoko-arena/sdk"

// spawnMonster creates the player's next monster at full health.
//
// Accounts: game, playerAccount (w), monster (w), player (w, s).
func spawnMonster(ctx sdk.InvokeContext, programID sdk.Address) error {
	accs, err := accounts(ctx, 4)
	if err != nil {
		return err
	}
	gameAcc, playerAcc, monsterAcc, owner := accs[0], accs[1], accs[2], accs[3]

	if err := requireSigner(owner, "player"); err != nil {
		return err
	}
	if err := requireWritable(owner, "player"); err != nil {
		return err
	}
	if err := requireWritable(playerAcc, "player account"); err != nil {
		return err
	}
	if _, err := loadGame(gameAcc, programID); err != nil {
		return err
	}
	p, err := loadPlayer(playerAcc, programID)
	if err != nil {
		return err
	}
	if err := require(p.Owner == owner.Key, ErrUnauthorized, "player account %s belongs to %s", playerAcc.Key, p.Owner); err != nil {
		return err
	}
	if err := require(p.Game == gameAcc.Key, ErrUnauthorized, "player account %s is registered in game %s", playerAcc.Key, p.Game); err != nil {
		return err
	}
	if err := requireDerived(playerAcc.Key, playerSeeds(gameAcc.Key, owner.Key), programID, "player"); err != nil {
		return err
	}

	index := p.NextMonsterIndex
	if err := requireDerived(monsterAcc.Key, monsterSeeds(gameAcc.Key, owner.Key, index), programID, "monster"); err != nil {
		return err
	}
	rent, err := checkAllocate(ctx, monsterAcc, MonsterAccountSize, "monster")
	if err != nil {
		return err
	}
	nextIndex, err := checkedAdd(index, 1, "next monster index")
	if err != nil {
		return err
	}
	toBeCollected, err := checkedAdd(p.ActionPointsToBeCollected, SpawnMonsterActionPoints, "action points to be collected")
	if err != nil {
		return err
	}
	total, err := checkedAdd(rent, SpawnMonsterActionPoints, "spawn cost")
	if err != nil {
		return err
	}
	if err := checkBudget(owner, total, "spawn monster"); err != nil {
		return err
	}

	m := &Monster{
		Owner:     owner.Key,
		Game:      gameAcc.Key,
		Hitpoints: InitialHitpoints,
	}
	allocate(programID, owner, monsterAcc, rent, EncodeMonster(m))
	p.NextMonsterIndex = nextIndex
	p.ActionPointsToBeCollected = toBeCollected
	playerAcc.Data = EncodePlayer(p)
	spendActionPoints(ctx, SpawnMonsterActionPoints, owner, playerAcc)

	ctx.Log("Monster Spawned!")
	EmitMonsterSpawned(ctx, monsterAcc.Key, owner.Key, index)
	return nil
}
