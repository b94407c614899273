package ledger

import (
	"context"

	"okinoko-arena/sdk"
)

// Store persists accounts between transactions.
type Store interface {
	// GetAccount returns the account at addr; found is false when nothing
	// was ever written there.
	GetAccount(ctx context.Context, addr sdk.Address) (acc Account, found bool, err error)
	// PutAccounts writes every account or none of them.
	PutAccounts(ctx context.Context, accounts []Account) error
	Close() error
}
