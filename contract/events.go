package contract

import (
	"encoding/json"
	"strconv"
	"strings"

	"okinoko-arena/sdk"
)

// Event represents the common structure for all emitted events.
// Each event has a type and a set of key/value attributes.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// emitEvent logs the event as JSON through the invoke context.
func emitEvent(ctx sdk.InvokeContext, eventType string, attributes map[string]string) {
	b, err := json.Marshal(Event{Type: eventType, Attributes: attributes})
	if err != nil {
		return
	}
	ctx.Log(string(b))
}

// ParseEvent decodes a log line emitted by the program, with or without the
// runtime's "Program log: " prefix. ok is false for plain log messages.
func ParseEvent(line string) (Event, bool) {
	line = strings.TrimPrefix(line, "Program log: ")
	var ev Event
	if err := json.Unmarshal([]byte(line), &ev); err != nil || ev.Type == "" {
		return Event{}, false
	}
	return ev, true
}

func u64s(v uint64) string { return strconv.FormatUint(v, 10) }

// EmitGameCreated emits an event when a new game is created.
func EmitGameCreated(ctx sdk.InvokeContext, game, gameMaster, treasury sdk.Address, maxItems uint8) {
	emitEvent(ctx, "gameCreated", map[string]string{
		"game":     game.String(),
		"by":       gameMaster.String(),
		"treasury": treasury.String(),
		"maxItems": u64s(uint64(maxItems)),
	})
}

// EmitPlayerCreated emits an event when a player joins a game.
func EmitPlayerCreated(ctx sdk.InvokeContext, game, player, owner sdk.Address) {
	emitEvent(ctx, "playerCreated", map[string]string{
		"game":   game.String(),
		"player": player.String(),
		"owner":  owner.String(),
	})
}

// EmitMonsterSpawned emits an event when a monster is spawned.
func EmitMonsterSpawned(ctx sdk.InvokeContext, monster, owner sdk.Address, index uint64) {
	emitEvent(ctx, "monsterSpawned", map[string]string{
		"monster": monster.String(),
		"owner":   owner.String(),
		"index":   u64s(index),
	})
}

// EmitMonsterAttacked emits an event for every landed attack.
func EmitMonsterAttacked(ctx sdk.InvokeContext, monster, attacker sdk.Address, damage, hitpoints uint64) {
	emitEvent(ctx, "monsterAttacked", map[string]string{
		"monster":   monster.String(),
		"by":        attacker.String(),
		"damage":    u64s(damage),
		"hitpoints": u64s(hitpoints),
	})
}

// EmitMonsterDefeated emits an event when an attack brings a monster to zero.
func EmitMonsterDefeated(ctx sdk.InvokeContext, monster, killer sdk.Address) {
	emitEvent(ctx, "monsterDefeated", map[string]string{
		"monster": monster.String(),
		"by":      killer.String(),
	})
}

// EmitActionPointsCollected emits an event when escrowed points reach the treasury.
func EmitActionPointsCollected(ctx sdk.InvokeContext, game, player sdk.Address, amount uint64) {
	emitEvent(ctx, "actionPointsCollected", map[string]string{
		"game":   game.String(),
		"player": player.String(),
		"amount": u64s(amount),
	})
}
