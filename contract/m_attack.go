package contract

import (
	"fmt"

	"okinoko-arena/sdk"
)

// attackMonster lands one hit on one of the signer's monsters.
//
// Accounts: playerAccount (w), monster (w), player (w, s).
func attackMonster(ctx sdk.InvokeContext, programID sdk.Address, monsterIndex uint64) error {
	accs, err := accounts(ctx, 3)
	if err != nil {
		return err
	}
	playerAcc, monsterAcc, owner := accs[0], accs[1], accs[2]

	if err := requireSigner(owner, "player"); err != nil {
		return err
	}
	if err := requireWritable(owner, "player"); err != nil {
		return err
	}
	if err := requireWritable(playerAcc, "player account"); err != nil {
		return err
	}
	if err := requireWritable(monsterAcc, "monster"); err != nil {
		return err
	}
	p, err := loadPlayer(playerAcc, programID)
	if err != nil {
		return err
	}
	if err := require(p.Owner == owner.Key, ErrUnauthorized, "player account %s belongs to %s", playerAcc.Key, p.Owner); err != nil {
		return err
	}
	if err := requireDerived(playerAcc.Key, playerSeeds(p.Game, owner.Key), programID, "player"); err != nil {
		return err
	}
	if err := require(monsterIndex < p.NextMonsterIndex, ErrInvalidTarget,
		"monster %d has not been spawned (next index %d)", monsterIndex, p.NextMonsterIndex); err != nil {
		return err
	}
	if err := requireDerived(monsterAcc.Key, monsterSeeds(p.Game, owner.Key, monsterIndex), programID, "monster"); err != nil {
		return err
	}
	m, err := loadMonster(monsterAcc, programID)
	if err != nil {
		return err
	}
	if err := require(m.Owner == owner.Key && m.Game == p.Game, ErrUnauthorized,
		"monster %s does not belong to %s in game %s", monsterAcc.Key, owner.Key, p.Game); err != nil {
		return err
	}
	if err := require(!m.Defeated(), ErrInvalidTarget, "monster %s is already defeated", monsterAcc.Key); err != nil {
		return err
	}

	hpAfter := saturatingSub(m.Hitpoints, AttackDamage)
	damage := m.Hitpoints - hpAfter
	killed := hpAfter == 0

	spent, err := checkedAdd(p.ActionPointsSpent, AttackMonsterActionPoints, "action points spent")
	if err != nil {
		return err
	}
	toBeCollected, err := checkedAdd(p.ActionPointsToBeCollected, AttackMonsterActionPoints, "action points to be collected")
	if err != nil {
		return err
	}
	experience, err := checkedAdd(p.Experience, 1, "experience")
	if err != nil {
		return err
	}
	kills := p.Kills
	if killed {
		if kills, err = checkedAdd(kills, 1, "kills"); err != nil {
			return err
		}
	}
	if err := checkBudget(owner, AttackMonsterActionPoints, "attack monster"); err != nil {
		return err
	}

	m.Hitpoints = hpAfter
	monsterAcc.Data = EncodeMonster(m)
	p.ActionPointsSpent = spent
	p.ActionPointsToBeCollected = toBeCollected
	p.Experience = experience
	p.Kills = kills
	playerAcc.Data = EncodePlayer(p)
	spendActionPoints(ctx, AttackMonsterActionPoints, owner, playerAcc)

	ctx.Log(fmt.Sprintf("Damage Dealt: %d", damage))
	ctx.Log("+1 EXP")
	EmitMonsterAttacked(ctx, monsterAcc.Key, owner.Key, damage, hpAfter)
	if killed {
		ctx.Log("You killed the monster!")
		EmitMonsterDefeated(ctx, monsterAcc.Key, owner.Key)
	}
	return nil
}
