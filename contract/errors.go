package contract

import (
	"errors"
	"fmt"
)

// ProgramError is a failure kind surfaced to the submitter. Codes follow the
// custom error range used by on-chain programs (6000+).
type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (e *ProgramError) Error() string { return e.Name + ": " + e.Msg }

var (
	ErrAddressCollision   = &ProgramError{Code: 6000, Name: "AddressCollision", Msg: "account already initialized"}
	ErrMissingDependency  = &ProgramError{Code: 6001, Name: "MissingDependency", Msg: "referenced account does not exist"}
	ErrUnauthorized       = &ProgramError{Code: 6002, Name: "Unauthorized", Msg: "signer or owner mismatch"}
	ErrInsufficientBudget = &ProgramError{Code: 6003, Name: "InsufficientBudget", Msg: "not enough action points"}
	ErrInvalidTarget      = &ProgramError{Code: 6004, Name: "InvalidTarget", Msg: "target cannot be acted on"}
	ErrInvalidArgument    = &ProgramError{Code: 6005, Name: "InvalidArgument", Msg: "invalid instruction argument"}
	ErrNumericalOverflow  = &ProgramError{Code: 6006, Name: "NumericalOverflow", Msg: "counter overflow"}
)

var programErrors = []*ProgramError{
	ErrAddressCollision,
	ErrMissingDependency,
	ErrUnauthorized,
	ErrInsufficientBudget,
	ErrInvalidTarget,
	ErrInvalidArgument,
	ErrNumericalOverflow,
}

// abort wraps kind with a detail message so errors.Is still matches the kind.
func abort(kind *ProgramError, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// require returns an abort error when cond does not hold.
func require(cond bool, kind *ProgramError, format string, args ...any) error {
	if cond {
		return nil
	}
	return abort(kind, format, args...)
}

// CodeOf returns the program error code carried by err, or 0.
func CodeOf(err error) uint32 {
	var pe *ProgramError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return 0
}

// ErrorByCode looks up a program error kind, e.g. to decode a receipt.
func ErrorByCode(code uint32) (*ProgramError, bool) {
	for _, e := range programErrors {
		if e.Code == code {
			return e, true
		}
	}
	return nil, false
}
