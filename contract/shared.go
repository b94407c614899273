package contract

import "okinoko-arena/sdk"

// ---------- Account codecs ----------
//
// Layouts (little-endian, no variable-length fields):
//
//	Game:    disc | gameMaster | treasury | actionPointsCollected | maxItemsPerPlayer
//	Player:  disc | owner | game | spent | toBeCollected | experience | kills | nextMonsterIndex
//	Monster: disc | owner | game | hitpoints

// EncodeGame serializes a game record.
func EncodeGame(g *Game) []byte {
	w := newWriter(GameAccountSize)
	w.discriminator(gameDiscriminator)
	w.address(g.GameMaster)
	w.address(g.Treasury)
	w.u64(g.ActionPointsCollected)
	w.u8(g.MaxItemsPerPlayer)
	return w.b
}

// DecodeGame parses a game record and checks its discriminator.
func DecodeGame(b []byte) (*Game, error) {
	r := &rd{b: b}
	if d := r.discriminator(); r.err == nil && d != gameDiscriminator {
		return nil, abort(ErrInvalidArgument, "account is not a game")
	}
	g := &Game{
		GameMaster:            r.address(),
		Treasury:              r.address(),
		ActionPointsCollected: r.u64(),
		MaxItemsPerPlayer:     r.u8(),
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return g, nil
}

// EncodePlayer serializes a player record.
func EncodePlayer(p *Player) []byte {
	w := newWriter(PlayerAccountSize)
	w.discriminator(playerDiscriminator)
	w.address(p.Owner)
	w.address(p.Game)
	w.u64(p.ActionPointsSpent)
	w.u64(p.ActionPointsToBeCollected)
	w.u64(p.Experience)
	w.u64(p.Kills)
	w.u64(p.NextMonsterIndex)
	return w.b
}

// DecodePlayer parses a player record and checks its discriminator.
func DecodePlayer(b []byte) (*Player, error) {
	r := &rd{b: b}
	if d := r.discriminator(); r.err == nil && d != playerDiscriminator {
		return nil, abort(ErrInvalidArgument, "account is not a player")
	}
	p := &Player{
		Owner:                     r.address(),
		Game:                      r.address(),
		ActionPointsSpent:         r.u64(),
		ActionPointsToBeCollected: r.u64(),
		Experience:                r.u64(),
		Kills:                     r.u64(),
		NextMonsterIndex:          r.u64(),
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return p, nil
}

// EncodeMonster serializes a monster record.
func EncodeMonster(m *Monster) []byte {
	w := newWriter(MonsterAccountSize)
	w.discriminator(monsterDiscriminator)
	w.address(m.Owner)
	w.address(m.Game)
	w.u64(m.Hitpoints)
	return w.b
}

// DecodeMonster parses a monster record and checks its discriminator.
func DecodeMonster(b []byte) (*Monster, error) {
	r := &rd{b: b}
	if d := r.discriminator(); r.err == nil && d != monsterDiscriminator {
		return nil, abort(ErrInvalidArgument, "account is not a monster")
	}
	m := &Monster{
		Owner:     r.address(),
		Game:      r.address(),
		Hitpoints: r.u64(),
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeRecord decodes any account the program owns, picking the layout by
// discriminator. kind is "game", "player" or "monster".
func DecodeRecord(b []byte) (kind string, record any, err error) {
	if len(b) < discriminatorLen {
		return "", nil, abort(ErrInvalidArgument, "record too short")
	}
	var d discriminator
	copy(d[:], b[:discriminatorLen])
	switch d {
	case gameDiscriminator:
		g, err := DecodeGame(b)
		return "game", g, err
	case playerDiscriminator:
		p, err := DecodePlayer(b)
		return "player", p, err
	case monsterDiscriminator:
		m, err := DecodeMonster(b)
		return "monster", m, err
	default:
		return "", nil, abort(ErrInvalidArgument, "unknown account discriminator %x", d[:])
	}
}

// ---------- Loading from declared accounts ----------

// loadGame reads a game the program owns. A missing account is a missing
// dependency; an account owned by anyone else is a spoof.
func loadGame(acc *sdk.AccountInfo, programID sdk.Address) (*Game, error) {
	if acc.IsUninitialized() {
		return nil, abort(ErrMissingDependency, "game %s does not exist", acc.Key)
	}
	if acc.Owner != programID {
		return nil, abort(ErrUnauthorized, "game %s is not owned by the program", acc.Key)
	}
	return DecodeGame(acc.Data)
}

func loadPlayer(acc *sdk.AccountInfo, programID sdk.Address) (*Player, error) {
	if acc.IsUninitialized() {
		return nil, abort(ErrMissingDependency, "player %s does not exist", acc.Key)
	}
	if acc.Owner != programID {
		return nil, abort(ErrUnauthorized, "player %s is not owned by the program", acc.Key)
	}
	return DecodePlayer(acc.Data)
}

func loadMonster(acc *sdk.AccountInfo, programID sdk.Address) (*Monster, error) {
	if acc.IsUninitialized() {
		return nil, abort(ErrMissingDependency, "monster %s does not exist", acc.Key)
	}
	if acc.Owner != programID {
		return nil, abort(ErrUnauthorized, "monster %s is not owned by the program", acc.Key)
	}
	return DecodeMonster(acc.Data)
}
