package ledger

import (
	"bytes"
	"fmt"
	"math/bits"

	"go.uber.org/zap"

	"okinoko-arena/sdk"
)

// invokeContext is the sdk.InvokeContext handed to a program for one
// instruction. Duplicate account metas share one AccountInfo.
type invokeContext struct {
	env      sdk.Env
	accounts []*sdk.AccountInfo
	rent     Rent
	logs     *[]string
	logger   *zap.Logger
}

func (c *invokeContext) GetEnv() sdk.Env { return c.env }

func (c *invokeContext) NumAccounts() int { return len(c.accounts) }

func (c *invokeContext) Account(index int) (*sdk.AccountInfo, error) {
	if index < 0 || index >= len(c.accounts) {
		return nil, fmt.Errorf("%w: index %d of %d", sdk.ErrNotEnoughAccountKeys, index, len(c.accounts))
	}
	return c.accounts[index], nil
}

func (c *invokeContext) RentMinimum(dataLen int) uint64 { return c.rent.Minimum(dataLen) }

func (c *invokeContext) Log(msg string) {
	*c.logs = append(*c.logs, "Program log: "+msg)
	c.logger.Debug("program log", zap.String("tx", c.env.TxID), zap.String("msg", msg))
}

// buildInfos materializes the declared accounts of ix from staged state.
// Flags of repeated metas are merged.
func buildInfos(ix sdk.Instruction, staged map[sdk.Address]Account) ([]*sdk.AccountInfo, map[sdk.Address]*sdk.AccountInfo) {
	byKey := make(map[sdk.Address]*sdk.AccountInfo, len(ix.Accounts))
	infos := make([]*sdk.AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		info, ok := byKey[meta.Address]
		if !ok {
			acc := staged[meta.Address].clone()
			info = &sdk.AccountInfo{
				Key:      meta.Address,
				Owner:    acc.Owner,
				Lamports: acc.Lamports,
				Data:     acc.Data,
			}
			byKey[meta.Address] = info
		}
		info.IsSigner = info.IsSigner || meta.IsSigner
		info.IsWritable = info.IsWritable || meta.IsWritable
		infos[i] = info
	}
	return infos, byKey
}

// verifyInstruction enforces the ledger's account rules on what a program
// did to its declared accounts:
//   - read-only accounts are untouched
//   - only the owning program writes data or reassigns ownership, except
//     that a program may claim a system account holding no data
//   - only the owning program debits, except signed system accounts
//   - balances are conserved and program accounts stay rent exempt
func verifyInstruction(programID sdk.Address, rent Rent, pre map[sdk.Address]Account, post map[sdk.Address]*sdk.AccountInfo) error {
	var preHi, preLo, postHi, postLo uint64
	for addr, info := range post {
		before := pre[addr]
		after := Account{Address: addr, Owner: info.Owner, Lamports: info.Lamports, Data: info.Data}

		var carry uint64
		preLo, carry = bits.Add64(preLo, before.Lamports, 0)
		preHi += carry
		postLo, carry = bits.Add64(postLo, after.Lamports, 0)
		postHi += carry

		if before.equal(after) {
			continue
		}
		if !info.IsWritable {
			return fmt.Errorf("%w: %s", ErrReadonlyModified, addr)
		}
		dataChanged := before.Owner != after.Owner || !bytes.Equal(before.Data, after.Data)
		if dataChanged {
			claim := before.IsUninitialized() && after.Owner == programID
			if before.Owner != programID && !claim {
				return fmt.Errorf("%w: %s owned by %s", ErrIllegalWrite, addr, before.Owner)
			}
		}
		if after.Lamports < before.Lamports {
			systemSpend := before.Owner == sdk.SystemProgramID && info.IsSigner
			if before.Owner != programID && !systemSpend {
				return fmt.Errorf("%w: %s", ErrExternalDebit, addr)
			}
		}
		if after.Owner == programID && after.Lamports < rent.Minimum(len(after.Data)) {
			return fmt.Errorf("%w: %s holds %d, needs %d", ErrRentNotExempt, addr, after.Lamports, rent.Minimum(len(after.Data)))
		}
	}
	if preHi != postHi || preLo != postLo {
		return ErrUnbalancedLamports
	}
	return nil
}
