package contract

import (
	"fmt"

	"okinoko-arena/sdk"
)

// depositActionPoints moves everything a player has escrowed into the game
// treasury. It carries no signer; any crank may submit it.
//
// Accounts: game (w), playerAccount (w), treasury (w).
func depositActionPoints(ctx sdk.InvokeContext, programID sdk.Address) error {
	accs, err := accounts(ctx, 3)
	if err != nil {
		return err
	}
	gameAcc, playerAcc, treasury := accs[0], accs[1], accs[2]

	for _, acc := range []struct {
		info *sdk.AccountInfo
		what string
	}{{gameAcc, "game"}, {playerAcc, "player account"}, {treasury, "treasury"}} {
		if err := requireWritable(acc.info, acc.what); err != nil {
			return err
		}
	}
	g, err := loadGame(gameAcc, programID)
	if err != nil {
		return err
	}
	p, err := loadPlayer(playerAcc, programID)
	if err != nil {
		return err
	}
	if err := require(treasury.Key == g.Treasury, ErrUnauthorized, "treasury %s does not match game treasury %s", treasury.Key, g.Treasury); err != nil {
		return err
	}
	if err := require(p.Game == gameAcc.Key, ErrUnauthorized, "player account %s is registered in game %s", playerAcc.Key, p.Game); err != nil {
		return err
	}
	if err := requireDerived(gameAcc.Key, gameSeeds(g.Treasury), programID, "game"); err != nil {
		return err
	}
	if err := requireDerived(playerAcc.Key, playerSeeds(gameAcc.Key, p.Owner), programID, "player"); err != nil {
		return err
	}

	amount := p.ActionPointsToBeCollected
	rent := ctx.RentMinimum(len(playerAcc.Data))
	if err := require(playerAcc.Lamports >= amount && playerAcc.Lamports-amount >= rent, ErrInsufficientBudget,
		"player account %s holds %d lamports, cannot release %d", playerAcc.Key, playerAcc.Lamports, amount); err != nil {
		return err
	}
	collected, err := checkedAdd(g.ActionPointsCollected, amount, "action points collected")
	if err != nil {
		return err
	}
	if _, err := checkedAdd(treasury.Lamports, amount, "treasury balance"); err != nil {
		return err
	}

	playerAcc.Lamports -= amount
	treasury.Lamports += amount
	p.ActionPointsToBeCollected = 0
	playerAcc.Data = EncodePlayer(p)
	g.ActionPointsCollected = collected
	gameAcc.Data = EncodeGame(g)

	ctx.Log(fmt.Sprintf("The treasury collected %d action points", amount))
	EmitActionPointsCollected(ctx, gameAcc.Key, playerAcc.Key, amount)
	return nil
}
