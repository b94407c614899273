package ledger

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"okinoko-arena/sdk"
)

// Account is the stored state at one address.
type Account struct {
	Address  sdk.Address
	Owner    sdk.Address
	Lamports uint64
	Data     []byte
}

// IsEmpty reports whether the account was never claimed nor funded.
func (a Account) IsEmpty() bool {
	return a.Owner == sdk.SystemProgramID && a.Lamports == 0 && len(a.Data) == 0
}

// IsUninitialized reports whether no program owns the account, regardless
// of its balance.
func (a Account) IsUninitialized() bool {
	return a.Owner == sdk.SystemProgramID && len(a.Data) == 0
}

func (a Account) equal(b Account) bool {
	return a.Owner == b.Owner && a.Lamports == b.Lamports && bytes.Equal(a.Data, b.Data)
}

func (a Account) clone() Account {
	out := a
	if a.Data != nil {
		out.Data = append([]byte(nil), a.Data...)
	}
	return out
}

var ErrCorruptAccount = errors.New("corrupt account record")

const envelopeHeader = sdk.AddressLen + 8

// EncodeAccount packs owner, lamports and data into a single record:
// owner (32) | lamports (u64 LE) | data.
func EncodeAccount(a Account) []byte {
	out := make([]byte, 0, envelopeHeader+len(a.Data))
	out = append(out, a.Owner[:]...)
	out = binary.LittleEndian.AppendUint64(out, a.Lamports)
	return append(out, a.Data...)
}

// DecodeAccount is the inverse of EncodeAccount.
func DecodeAccount(addr sdk.Address, b []byte) (Account, error) {
	if len(b) < envelopeHeader {
		return Account{}, fmt.Errorf("%w: %s has %d bytes", ErrCorruptAccount, addr, len(b))
	}
	a := Account{Address: addr}
	copy(a.Owner[:], b[:sdk.AddressLen])
	a.Lamports = binary.LittleEndian.Uint64(b[sdk.AddressLen:envelopeHeader])
	if len(b) > envelopeHeader {
		a.Data = append([]byte(nil), b[envelopeHeader:]...)
	}
	return a, nil
}
