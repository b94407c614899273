package contract

import "okinoko-arena/sdk"

// ---------- Types & Constants ----------

// DefaultProgramID is the address the arena program is deployed at.
const DefaultProgramID = "rGi3t3WPmchGjQ91YCLsQtiDGX2xTjjVodycFKtdk7m"

const (
	// MaxItemsPerPlayer caps the inventory size a game may configure.
	MaxItemsPerPlayer uint8 = 8

	CreatePlayerActionPoints  uint64 = 100
	SpawnMonsterActionPoints  uint64 = 5
	AttackMonsterActionPoints uint64 = 1

	// InitialHitpoints is what every monster spawns with.
	InitialHitpoints uint64 = 100
	// AttackDamage is taken off a monster per attack.
	AttackDamage     uint64 = 1
)

// PDA seed prefixes.
const (
	GameSeed    = "GAME"
	PlayerSeed  = "PLAYER"
	MonsterSeed = "MONSTER"
)

// Game is the root configuration of one arena.
type Game struct {
	GameMaster            sdk.Address `json:"gameMaster"`
	Treasury              sdk.Address `json:"treasury"`
	ActionPointsCollected uint64      `json:"actionPointsCollected"`
	MaxItemsPerPlayer     uint8       `json:"maxItemsPerPlayer"`
}

// Player is the per-(game, owner) resource ledger.
//
// ActionPointsSpent counts combat points (attacks). Registration and spawn
// fees only show up in ActionPointsToBeCollected until the treasury
// collects them.
type Player struct {
	Owner                     sdk.Address `json:"owner"`
	Game                      sdk.Address `json:"game"`
	ActionPointsSpent         uint64      `json:"actionPointsSpent"`
	ActionPointsToBeCollected uint64      `json:"actionPointsToBeCollected"`
	Experience                uint64      `json:"experience"`
	Kills                     uint64      `json:"kills"`
	NextMonsterIndex          uint64      `json:"nextMonsterIndex"`
}

// Monster is a combat entity spawned by a player. Its index is not stored;
// it is part of the address.
type Monster struct {
	Owner     sdk.Address `json:"owner"`
	Game      sdk.Address `json:"game"`
	Hitpoints uint64      `json:"hitpoints"`
}

// Defeated reports whether the monster has no hitpoints left.
func (m *Monster) Defeated() bool { return m.Hitpoints == 0 }

// Account sizes, discriminator included.
const (
	discriminatorLen   = 8
	GameAccountSize    = discriminatorLen + 32 + 32 + 8 + 1
	PlayerAccountSize  = discriminatorLen + 32 + 32 + 8*5
	MonsterAccountSize = discriminatorLen + 32 + 32 + 8
)
