// Package cli implements the arena command line client. Each command builds
// one instruction, submits it to a ledger and prints the result as JSON.
package cli

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"okinoko-arena/contract"
	"okinoko-arena/internal/ledger"
	"okinoko-arena/sdk"
)

// Ledger is the part of the runtime the client drives.
type Ledger interface {
	Submit(ctx context.Context, tx ledger.Transaction) (ledger.Receipt, error)
	Account(ctx context.Context, addr sdk.Address) (ledger.Account, bool, error)
	Credit(ctx context.Context, addr sdk.Address, lamports uint64) error
}

// ErrUsage marks bad command lines.
var ErrUsage = errors.New("usage")

// App holds what every command needs.
type App struct {
	Ledger    Ledger
	ProgramID sdk.Address
	Out       io.Writer
	Logger    *zap.Logger
}

type command struct {
	summary string
	run     func(a *App, ctx context.Context, fs *flag.FlagSet, args []string) error
}

var commands = map[string]command{
	"keygen":        {"generate a new identity", (*App).keygen},
	"credit":        {"mint lamports into an address", (*App).credit},
	"derive":        {"derive a game, player or monster address", (*App).derive},
	"create-game":   {"create a game bound to a treasury", (*App).createGame},
	"create-player": {"join a game", (*App).createPlayer},
	"spawn":         {"spawn the next monster", (*App).spawn},
	"attack":        {"attack one of your monsters", (*App).attack},
	"collect":       {"move a player's escrowed action points to the treasury", (*App).collect},
	"show":          {"print an account and its decoded record", (*App).show},
}

// Run dispatches args[0] to its command.
func (a *App) Run(ctx context.Context, args []string) error {
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: arena <command> [flags]\n%s", ErrUsage, a.usage())
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q\n%s", ErrUsage, args[0], a.usage())
	}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return cmd.run(a, ctx, fs, args[1:])
}

func (a *App) usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	out := "commands:"
	for _, name := range names {
		out += fmt.Sprintf("\n  %-14s %s", name, commands[name].summary)
	}
	return out
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// addressFlag is a flag.Value holding a required address.
type addressFlag struct {
	addr sdk.Address
	set  bool
}

func (f *addressFlag) String() string {
	if !f.set {
		return ""
	}
	return f.addr.String()
}

func (f *addressFlag) Set(s string) error {
	addr, err := sdk.ParseAddress(s)
	if err != nil {
		return err
	}
	f.addr, f.set = addr, true
	return nil
}

func parse(fs *flag.FlagSet, args []string, required map[string]*addressFlag) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !required[name].set {
			return fmt.Errorf("%w: %s: -%s is required", ErrUsage, fs.Name(), name)
		}
	}
	return nil
}

func (a *App) keygen(_ context.Context, fs *flag.FlagSet, args []string) error {
	if err := parse(fs, args, nil); err != nil {
		return err
	}
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	var addr sdk.Address
	copy(addr[:], pub)
	return a.print(map[string]string{"address": addr.String()})
}

func (a *App) credit(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var to addressFlag
	fs.Var(&to, "to", "address to credit")
	lamports := fs.Uint64("lamports", 0, "amount to mint")
	if err := parse(fs, args, map[string]*addressFlag{"to": &to}); err != nil {
		return err
	}
	if *lamports == 0 {
		return fmt.Errorf("%w: credit: -lamports must be positive", ErrUsage)
	}
	if err := a.Ledger.Credit(ctx, to.addr, *lamports); err != nil {
		return err
	}
	acc, _, err := a.Ledger.Account(ctx, to.addr)
	if err != nil {
		return err
	}
	return a.print(map[string]any{"address": to.addr, "lamports": acc.Lamports})
}

func (a *App) derive(_ context.Context, fs *flag.FlagSet, args []string) error {
	var treasury, owner addressFlag
	fs.Var(&treasury, "treasury", "treasury the game is bound to")
	fs.Var(&owner, "owner", "player identity (player and monster)")
	kind := fs.String("kind", "game", "game, player or monster")
	index := fs.Uint64("index", 0, "monster index")
	if err := parse(fs, args, map[string]*addressFlag{"treasury": &treasury}); err != nil {
		return err
	}

	game, bump, err := contract.GameAddress(a.ProgramID, treasury.addr)
	if err != nil {
		return err
	}
	out := map[string]any{"kind": *kind, "game": game}
	switch *kind {
	case "game":
		out["address"], out["bump"] = game, bump
	case "player", "monster":
		if !owner.set {
			return fmt.Errorf("%w: derive: -owner is required for %s", ErrUsage, *kind)
		}
		var addr sdk.Address
		if *kind == "player" {
			addr, bump, err = contract.PlayerAddress(a.ProgramID, game, owner.addr)
		} else {
			addr, bump, err = contract.MonsterAddress(a.ProgramID, game, owner.addr, *index)
			out["index"] = *index
		}
		if err != nil {
			return err
		}
		out["address"], out["bump"] = addr, bump
	default:
		return fmt.Errorf("%w: derive: unknown kind %q", ErrUsage, *kind)
	}
	return a.print(out)
}

func (a *App) createGame(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var master, treasury addressFlag
	fs.Var(&master, "master", "game master paying for the game account")
	fs.Var(&treasury, "treasury", "treasury collecting action points")
	maxItems := fs.Uint("max-items", uint(contract.MaxItemsPerPlayer), "items each player may hold")
	if err := parse(fs, args, map[string]*addressFlag{"master": &master, "treasury": &treasury}); err != nil {
		return err
	}
	if *maxItems > 255 {
		return fmt.Errorf("%w: create-game: -max-items out of range", ErrUsage)
	}
	ix, err := contract.NewCreateGameInstruction(a.ProgramID, master.addr, treasury.addr, uint8(*maxItems))
	if err != nil {
		return err
	}
	return a.submit(ctx, ix, master.addr, treasury.addr)
}

func (a *App) createPlayer(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var treasury, owner addressFlag
	fs.Var(&treasury, "treasury", "treasury of the game to join")
	fs.Var(&owner, "owner", "player identity")
	if err := parse(fs, args, map[string]*addressFlag{"treasury": &treasury, "owner": &owner}); err != nil {
		return err
	}
	game, _, err := contract.GameAddress(a.ProgramID, treasury.addr)
	if err != nil {
		return err
	}
	ix, err := contract.NewCreatePlayerInstruction(a.ProgramID, game, owner.addr)
	if err != nil {
		return err
	}
	return a.submit(ctx, ix, owner.addr)
}

func (a *App) spawn(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var treasury, owner addressFlag
	fs.Var(&treasury, "treasury", "treasury of the game")
	fs.Var(&owner, "owner", "player identity")
	if err := parse(fs, args, map[string]*addressFlag{"treasury": &treasury, "owner": &owner}); err != nil {
		return err
	}
	game, _, err := contract.GameAddress(a.ProgramID, treasury.addr)
	if err != nil {
		return err
	}
	// The monster address depends on the player's counter, so read it first.
	player, err := a.loadPlayer(ctx, game, owner.addr)
	if err != nil {
		return err
	}
	ix, err := contract.NewSpawnMonsterInstruction(a.ProgramID, game, owner.addr, player.NextMonsterIndex)
	if err != nil {
		return err
	}
	return a.submit(ctx, ix, owner.addr)
}

func (a *App) attack(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var treasury, owner addressFlag
	fs.Var(&treasury, "treasury", "treasury of the game")
	fs.Var(&owner, "owner", "player identity")
	index := fs.Uint64("index", 0, "index of the monster to attack")
	if err := parse(fs, args, map[string]*addressFlag{"treasury": &treasury, "owner": &owner}); err != nil {
		return err
	}
	game, _, err := contract.GameAddress(a.ProgramID, treasury.addr)
	if err != nil {
		return err
	}
	ix, err := contract.NewAttackMonsterInstruction(a.ProgramID, game, owner.addr, *index)
	if err != nil {
		return err
	}
	return a.submit(ctx, ix, owner.addr)
}

func (a *App) collect(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var treasury, owner addressFlag
	fs.Var(&treasury, "treasury", "treasury of the game")
	fs.Var(&owner, "owner", "player whose action points are collected")
	if err := parse(fs, args, map[string]*addressFlag{"treasury": &treasury, "owner": &owner}); err != nil {
		return err
	}
	ix, err := contract.NewDepositActionPointsInstruction(a.ProgramID, treasury.addr, owner.addr)
	if err != nil {
		return err
	}
	return a.submit(ctx, ix)
}

func (a *App) show(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var addr addressFlag
	fs.Var(&addr, "address", "account to print")
	if err := parse(fs, args, map[string]*addressFlag{"address": &addr}); err != nil {
		return err
	}
	acc, found, err := a.Ledger.Account(ctx, addr.addr)
	if err != nil {
		return err
	}
	out := map[string]any{
		"address":  addr.addr,
		"exists":   found,
		"owner":    acc.Owner,
		"lamports": acc.Lamports,
		"dataLen":  len(acc.Data),
	}
	if acc.Owner == a.ProgramID && len(acc.Data) > 0 {
		kind, record, err := contract.DecodeRecord(acc.Data)
		if err != nil {
			return err
		}
		out["kind"], out["record"] = kind, record
	}
	return a.print(out)
}

func (a *App) loadPlayer(ctx context.Context, game, owner sdk.Address) (*contract.Player, error) {
	addr, _, err := contract.PlayerAddress(a.ProgramID, game, owner)
	if err != nil {
		return nil, err
	}
	acc, found, err := a.Ledger.Account(ctx, addr)
	if err != nil {
		return nil, err
	}
	if !found || acc.Owner != a.ProgramID {
		return nil, fmt.Errorf("%w: player %s does not exist", contract.ErrMissingDependency, addr)
	}
	return contract.DecodePlayer(acc.Data)
}

// txResult is the JSON printed for a submitted instruction.
type txResult struct {
	TxID        string           `json:"tx"`
	Instruction string           `json:"instruction"`
	Written     []sdk.Address    `json:"written"`
	Events      []contract.Event `json:"events"`
	Logs        []string         `json:"logs"`
}

func (a *App) submit(ctx context.Context, ix sdk.Instruction, signers ...sdk.Address) error {
	name, _ := contract.InstructionName(ix.Data)
	receipt, err := a.Ledger.Submit(ctx, ledger.Transaction{
		Instructions: []sdk.Instruction{ix},
		Signers:      signers,
	})
	if err != nil {
		a.Logger.Debug("submit failed", zap.String("instruction", name), zap.Strings("logs", receipt.Logs))
		return err
	}
	res := txResult{TxID: receipt.TxID, Instruction: name, Written: receipt.Written, Logs: receipt.Logs}
	for _, line := range receipt.Logs {
		if ev, ok := contract.ParseEvent(line); ok {
			res.Events = append(res.Events, ev)
		}
	}
	return a.print(res)
}
