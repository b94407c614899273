package contract

import (
	"fmt"

	"okinoko-arena/sdk"
)

//
// Account plumbing shared by the instructions: fetching declared accounts,
// allocating PDAs and charging action points. Each check* helper only
// validates; the matching apply step runs once every check has passed.
//

// accounts returns the first n declared accounts.
func accounts(ctx sdk.InvokeContext, n int) ([]*sdk.AccountInfo, error) {
	if ctx.NumAccounts() < n {
		return nil, fmt.Errorf("%w: %w: want %d, got %d", ErrInvalidArgument, sdk.ErrNotEnoughAccountKeys, n, ctx.NumAccounts())
	}
	out := make([]*sdk.AccountInfo, n)
	for i := range out {
		acc, err := ctx.Account(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		out[i] = acc
	}
	return out, nil
}

func requireSigner(acc *sdk.AccountInfo, what string) error {
	return require(acc.IsSigner, ErrUnauthorized, "%s %s must sign", what, acc.Key)
}

func requireWritable(acc *sdk.AccountInfo, what string) error {
	return require(acc.IsWritable, ErrInvalidArgument, "%s %s must be writable", what, acc.Key)
}

// checkAllocate verifies target can be claimed and returns the rent the
// payer still has to fund. Lamports already sitting at the address count
// towards the rent.
func checkAllocate(ctx sdk.InvokeContext, target *sdk.AccountInfo, size int, what string) (uint64, error) {
	if !target.IsUninitialized() {
		return 0, abort(ErrAddressCollision, "%s %s already exists", what, target.Key)
	}
	if err := requireWritable(target, what); err != nil {
		return 0, err
	}
	return saturatingSub(ctx.RentMinimum(size), target.Lamports), nil
}

// allocate hands target to the program with data, funded by payer.
func allocate(programID sdk.Address, payer, target *sdk.AccountInfo, rent uint64, data []byte) {
	payer.Lamports -= rent
	target.Lamports += rent
	target.Owner = programID
	target.Data = data
}

// checkBudget verifies the player's wallet covers total lamports.
func checkBudget(wallet *sdk.AccountInfo, total uint64, action string) error {
	return require(wallet.Lamports >= total, ErrInsufficientBudget,
		"%s needs %d lamports, wallet %s holds %d", action, total, wallet.Key, wallet.Lamports)
}

// spendActionPoints moves points lamports from the player's wallet into the
// player account, where they wait for the treasury to collect them.
func spendActionPoints(ctx sdk.InvokeContext, points uint64, wallet, escrow *sdk.AccountInfo) {
	wallet.Lamports -= points
	escrow.Lamports += points
	ctx.Log(fmt.Sprintf("Minus %d action points", points))
}
