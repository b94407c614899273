package sdk

import "errors"

var ErrNotEnoughAccountKeys = errors.New("not enough account keys")

// Env describes the transaction being executed.
type Env struct {
	TxID      string
	ProgramID Address
	BlockTime int64 // unix seconds
}

// AccountInfo is the program's view of one declared account during
// execution. Mutations land in the runtime's staging area and are only
// committed when the program returns without error.
type AccountInfo struct {
	Key        Address
	Owner      Address
	Lamports   uint64
	Data       []byte
	IsSigner   bool
	IsWritable bool
}

// IsUninitialized reports whether no program has claimed the account. It may
// still hold lamports someone sent there.
func (a *AccountInfo) IsUninitialized() bool {
	return a.Owner == SystemProgramID && len(a.Data) == 0
}

// InvokeContext is what a program sees of the ledger while it runs.
type InvokeContext interface {
	GetEnv() Env
	// Account returns the declared account at index, in instruction order.
	Account(index int) (*AccountInfo, error)
	NumAccounts() int
	// RentMinimum is the balance an account of dataLen bytes must hold.
	RentMinimum(dataLen int) uint64
	Log(msg string)
}
