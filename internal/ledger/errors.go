package ledger

import "errors"

var (
	ErrEmptyTransaction   = errors.New("transaction has no instructions")
	ErrMissingSignature   = errors.New("missing required signature")
	ErrUnknownProgram     = errors.New("unknown program")
	ErrReadonlyModified   = errors.New("instruction modified a read-only account")
	ErrIllegalWrite       = errors.New("instruction wrote data of an account its program does not own")
	ErrExternalDebit      = errors.New("instruction debited an account it may not spend from")
	ErrUnbalancedLamports = errors.New("sum of account balances changed")
	ErrRentNotExempt      = errors.New("account balance below rent-exempt minimum")
	ErrCreditOverflow     = errors.New("credit overflows account balance")
)
