package contract

import (
	"errors"
	"fmt"
	"testing"

	must "github.com/stretchr/testify/require"

	"okinoko-arena/internal/ledger"
	"okinoko-arena/sdk"
)

// FakeChain keeps accounts in a map and runs the program against copies of
// them, so a failed instruction leaves the map untouched.
type FakeChain struct {
	programID sdk.Address
	program   *Program
	accounts  map[sdk.Address]sdk.AccountInfo
	logs      []string
	txCount   int
}

func NewFakeChain() *FakeChain {
	id := sdk.MustParseAddress(DefaultProgramID)
	return &FakeChain{
		programID: id,
		program:   New(id),
		accounts:  make(map[sdk.Address]sdk.AccountInfo),
	}
}

// fakeContext is the sdk.InvokeContext for one FakeChain instruction.
type fakeContext struct {
	env      sdk.Env
	accounts []*sdk.AccountInfo
	logs     *[]string
}

func (c *fakeContext) GetEnv() sdk.Env { return c.env }

func (c *fakeContext) NumAccounts() int { return len(c.accounts) }

func (c *fakeContext) Account(i int) (*sdk.AccountInfo, error) {
	if i < 0 || i >= len(c.accounts) {
		return nil, sdk.ErrNotEnoughAccountKeys
	}
	return c.accounts[i], nil
}

func (c *fakeContext) RentMinimum(n int) uint64 { return ledger.DefaultRent.Minimum(n) }

func (c *fakeContext) Log(msg string) { *c.logs = append(*c.logs, msg) }

func (fc *FakeChain) Fund(addr sdk.Address, lamports uint64) {
	acc := fc.accounts[addr]
	acc.Key = addr
	acc.Lamports += lamports
	fc.accounts[addr] = acc
}

func (fc *FakeChain) Lamports(addr sdk.Address) uint64 { return fc.accounts[addr].Lamports }

// Invoke runs ix. Accounts are committed back only when the program succeeds.
func (fc *FakeChain) Invoke(ix sdk.Instruction) error {
	fc.txCount++
	byKey := make(map[sdk.Address]*sdk.AccountInfo)
	ctx := &fakeContext{
		env:  sdk.Env{TxID: fmt.Sprintf("tx%d", fc.txCount), ProgramID: fc.programID},
		logs: &fc.logs,
	}
	for _, meta := range ix.Accounts {
		info, ok := byKey[meta.Address]
		if !ok {
			acc := fc.accounts[meta.Address]
			acc.Key = meta.Address
			acc.Data = append([]byte(nil), acc.Data...)
			info = &acc
			byKey[meta.Address] = info
		}
		info.IsSigner = info.IsSigner || meta.IsSigner
		info.IsWritable = info.IsWritable || meta.IsWritable
		ctx.accounts = append(ctx.accounts, info)
	}
	if err := fc.program.Process(ctx, ix.Data); err != nil {
		return err
	}
	for addr, info := range byKey {
		acc := *info
		acc.IsSigner, acc.IsWritable = false, false
		fc.accounts[addr] = acc
	}
	return nil
}

func (fc *FakeChain) MustInvoke(t *testing.T, ix sdk.Instruction, err error) {
	t.Helper()
	must.NoError(t, err)
	must.NoError(t, fc.Invoke(ix))
}

// ExpectAbort asserts that ix fails with kind and changes nothing.
func (fc *FakeChain) ExpectAbort(t *testing.T, ix sdk.Instruction, kind *ProgramError) {
	t.Helper()
	before := make(map[sdk.Address]sdk.AccountInfo, len(fc.accounts))
	for k, v := range fc.accounts {
		before[k] = v
	}
	err := fc.Invoke(ix)
	must.Error(t, err)
	must.Truef(t, errors.Is(err, kind), "want %s, got %v", kind.Name, err)
	must.Equal(t, before, fc.accounts)
}

func (fc *FakeChain) Game(t *testing.T, addr sdk.Address) *Game {
	t.Helper()
	acc := fc.accounts[addr]
	must.Equal(t, fc.programID, acc.Owner)
	g, err := DecodeGame(acc.Data)
	must.NoError(t, err)
	return g
}

func (fc *FakeChain) Player(t *testing.T, addr sdk.Address) *Player {
	t.Helper()
	acc := fc.accounts[addr]
	must.Equal(t, fc.programID, acc.Owner)
	p, err := DecodePlayer(acc.Data)
	must.NoError(t, err)
	return p
}

func (fc *FakeChain) Monster(t *testing.T, addr sdk.Address) *Monster {
	t.Helper()
	acc := fc.accounts[addr]
	must.Equal(t, fc.programID, acc.Owner)
	m, err := DecodeMonster(acc.Data)
	must.NoError(t, err)
	return m
}

// testAddress returns a deterministic identity for tests.
func testAddress(seed byte) sdk.Address {
	var a sdk.Address
	for i := range a {
		a[i] = seed + byte(i)
	}
	return a
}

// mustBuild unwraps an instruction builder. Builders only fail when no bump
// yields an off-curve address, which does not happen for test seeds.
func mustBuild(ix sdk.Instruction, err error) sdk.Instruction {
	if err != nil {
		panic(err)
	}
	return ix
}

// setupGame funds and creates a game owned by treasury, returning its address.
func (fc *FakeChain) setupGame(t *testing.T, master, treasury sdk.Address, maxItems uint8) sdk.Address {
	t.Helper()
	fc.Fund(master, 10_000_000_000)
	ix, err := NewCreateGameInstruction(fc.programID, master, treasury, maxItems)
	fc.MustInvoke(t, ix, err)
	game, _, err := GameAddress(fc.programID, treasury)
	must.NoError(t, err)
	return game
}

// setupPlayer funds owner with lamports and registers them in game.
func (fc *FakeChain) setupPlayer(t *testing.T, game, owner sdk.Address, lamports uint64) sdk.Address {
	t.Helper()
	fc.Fund(owner, lamports)
	ix, err := NewCreatePlayerInstruction(fc.programID, game, owner)
	fc.MustInvoke(t, ix, err)
	player, _, err := PlayerAddress(fc.programID, game, owner)
	must.NoError(t, err)
	return player
}

func sdkProgramID() sdk.Address { return sdk.MustParseAddress(DefaultProgramID) }
